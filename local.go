// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panelsplit

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ObjMeta describes a stored object
type ObjMeta struct {
	Name string
	Date time.Time
}

// LocalConn is a simple implementation of the Uploader interface
// that doesn't rely on any "cloud" services, instead copying files
// into a directory tree on the local machine, with a subdirectory
// per bucket. This is particularly useful for testing, and for
// publishing panels to a shared drive.
type LocalConn struct {
	// these should be set before running Init(), or left to defaults
	Dir    string
	Logger *log.Logger
}

// Init creates the storage directory if needed
func (a *LocalConn) Init() error {
	if a.Dir == "" {
		a.Dir = filepath.Join(os.TempDir(), "panelsplit")
	}
	err := os.MkdirAll(a.Dir, 0755)
	if err != nil {
		return fmt.Errorf("Error creating storage directory %s: %w", a.Dir, err)
	}

	if a.Logger == nil {
		a.Logger = log.New(os.Stdout, "", 0)
	}

	return nil
}

// CreateBucket creates the directory for a bucket, if it doesn't
// already exist
func (a *LocalConn) CreateBucket(name string) error {
	err := os.MkdirAll(filepath.Join(a.Dir, name), 0755)
	if err != nil {
		return fmt.Errorf("Error creating bucket directory %s: %w", name, err)
	}
	return nil
}

func prefixwalker(dirpath string, prefix string, list *[]ObjMeta) filepath.WalkFunc {
	return func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		n := filepath.ToSlash(strings.TrimPrefix(path, dirpath+string(filepath.Separator)))
		if !strings.HasPrefix(n, prefix) {
			return nil
		}
		*list = append(*list, ObjMeta{Name: n, Date: info.ModTime()})
		return nil
	}
}

// ListObjects lists the keys in a bucket which start with prefix
func (a *LocalConn) ListObjects(bucket string, prefix string) ([]string, error) {
	var names []string
	list, err := a.ListObjectsWithMeta(bucket, prefix)
	if err != nil {
		return names, err
	}
	for _, v := range list {
		names = append(names, v.Name)
	}
	return names, nil
}

// ListObjectsWithMeta lists the objects in a bucket which start
// with prefix, along with their modification times
func (a *LocalConn) ListObjectsWithMeta(bucket string, prefix string) ([]ObjMeta, error) {
	var list []ObjMeta
	d := filepath.Join(a.Dir, bucket)
	if _, err := os.Stat(d); os.IsNotExist(err) {
		return list, nil
	}
	err := filepath.Walk(d, prefixwalker(d, prefix, &list))
	return list, err
}

// DeleteObjects removes keys from a bucket
func (a *LocalConn) DeleteObjects(bucket string, keys []string) error {
	for _, k := range keys {
		err := os.Remove(filepath.Join(a.Dir, bucket, filepath.FromSlash(k)))
		if err != nil {
			return err
		}
	}
	return nil
}

// Upload just copies the file from path to Dir/bucket/key
func (a *LocalConn) Upload(bucket string, key string, path string) error {
	fn := filepath.Join(a.Dir, bucket, filepath.FromSlash(key))
	err := os.MkdirAll(filepath.Dir(fn), 0755)
	if err != nil {
		return fmt.Errorf("Error creating directory for %s: %w", key, err)
	}

	fin, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fin.Close()

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, fin)
	if err != nil {
		return err
	}
	return f.Close()
}

// Log records an item in the with the Logger. Arguments are handled
// as with fmt.Println.
func (a *LocalConn) Log(v ...interface{}) {
	a.Logger.Println(v...)
}
