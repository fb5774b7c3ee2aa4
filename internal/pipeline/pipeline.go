// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// pipeline is a package used by the panelsplit command, which
// handles splitting a directory of pages, using channels to
// coordinate the workers. Note that it is considered an "internal"
// package, not intended for external use, and no guarantee is made
// of the stability of any interfaces provided.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"rescribe.xyz/panelsplit"
	"rescribe.xyz/panelsplit/panel"
)

// Extensions which are treated as page images
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

const graphName = "profile.png"

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// Uploader publishes files to a bucket. It is satisfied by
// panelsplit.LocalConn and panelsplit.AwsConn.
type Uploader interface {
	Log(v ...interface{})
	Upload(bucket string, key string, path string) error
	ListObjects(bucket string, prefix string) ([]string, error)
	DeleteObjects(bucket string, keys []string) error
}

// Options controls how a batch of pages is processed
type Options struct {
	Params  panel.Params
	Workers int  // Number of pages to process at once; below 1 means 1
	Graph   bool // Save a graph of each page's edge profile
	PDF     bool // Save a PDF of each page's panels

	Uploader Uploader // If set, every file written is uploaded, and stale ones removed
	Bucket   string   // Bucket to upload to

	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(NullWriter(true), "", 0)
	}
	return o.Logger
}

// DecodeError is returned when an input file can't be read as an image
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Error decoding image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IOError is returned when something can't be written or uploaded
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("Error writing %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Result is the outcome of processing one page
type Result struct {
	Path       string   // Input file
	OutDir     string   // Directory the panels were written to
	Boundaries []int    // Rows found to separate panels
	Written    []string // Panel files written, in order from the top of the page
	Extra      []string // Graph and PDF files written
	Kept       int
	Discarded  int
	Err        error
}

// ListImages returns the page images in dir, sorted by name. Files
// starting with "." are skipped, to prevent automatically generated
// files like .DS_Store getting in the way.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("Failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !e.Type().IsRegular() {
			continue
		}
		if !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}

// basename returns the file name without its directory or extension
func basename(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ProcessPage splits the page at path, writing its panels into a
// subdirectory of outdir named after the page. Any failure is
// recorded in the Result rather than returned, so a batch can carry
// on with the next page.
func ProcessPage(ctx context.Context, path string, outdir string, opts Options) Result {
	logger := opts.logger()
	base := basename(path)
	res := Result{Path: path, OutDir: filepath.Join(outdir, base)}

	select {
	case <-ctx.Done():
		res.Err = ctx.Err()
		return res
	default:
	}

	logger.Println("Processing", path)
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		res.Err = &DecodeError{Path: path, Err: err}
		return res
	}

	page, err := splitPage(path, img, opts.Params)
	if err != nil {
		res.Err = err
		return res
	}
	res.Boundaries = page.Boundaries
	res.Discarded = page.Discarded()
	logger.Printf("Found %d boundaries in %s: %v\n", len(page.Boundaries), path, page.Boundaries)

	err = os.MkdirAll(res.OutDir, 0755)
	if err != nil {
		res.Err = &IOError{Path: res.OutDir, Err: err}
		return res
	}

	for i, pn := range page.Kept() {
		fn := filepath.Join(res.OutDir, fmt.Sprintf("%s_%d.jpg", opts.Params.OutputPrefix, i+1))
		logger.Println("Saving", fn)
		err = imaging.Save(pn.Image, fn, imaging.JPEGQuality(opts.Params.JPEGQuality))
		if err != nil {
			res.Err = &IOError{Path: fn, Err: err}
			return res
		}
		res.Written = append(res.Written, fn)
		res.Kept++
	}

	if opts.Graph {
		fn := filepath.Join(res.OutDir, graphName)
		err = saveGraph(page, opts.Params, base, fn)
		if err != nil {
			res.Err = &IOError{Path: fn, Err: err}
			return res
		}
		res.Extra = append(res.Extra, fn)
	}

	if opts.PDF && len(res.Written) > 0 {
		fn := filepath.Join(res.OutDir, base+".pdf")
		err = savePDF(res.Written, fn)
		if err != nil {
			res.Err = &IOError{Path: fn, Err: err}
			return res
		}
		res.Extra = append(res.Extra, fn)
	}

	if opts.Uploader != nil {
		err = publish(opts.Uploader, opts.Bucket, base, append(res.Written[:len(res.Written):len(res.Written)], res.Extra...), logger)
		if err != nil {
			res.Err = err
			return res
		}
	}

	return res
}

// publish uploads files under the base/ prefix, then removes any
// keys under that prefix left over from an earlier run which found
// more panels
func publish(conn Uploader, bucket string, base string, files []string, logger *log.Logger) error {
	current := make(map[string]bool)
	for _, fn := range files {
		key := base + "/" + filepath.Base(fn)
		logger.Println("Uploading", key)
		err := conn.Upload(bucket, key, fn)
		if err != nil {
			return &IOError{Path: key, Err: err}
		}
		current[key] = true
	}

	keys, err := conn.ListObjects(bucket, base+"/")
	if err != nil {
		return &IOError{Path: base + "/", Err: fmt.Errorf("Error listing uploaded files: %w", err)}
	}
	var stale []string
	for _, k := range keys {
		if !current[k] {
			stale = append(stale, k)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	logger.Println("Removing stale files", stale)
	err = conn.DeleteObjects(bucket, stale)
	if err != nil {
		return &IOError{Path: base + "/", Err: fmt.Errorf("Error removing stale files: %w", err)}
	}
	return nil
}

// splitPage splits a decoded page. An image with no pixels is
// treated as one which couldn't be decoded.
func splitPage(path string, img image.Image, params panel.Params) (*panel.Page, error) {
	page, err := panel.Split(img, params)
	if errors.Is(err, panel.ErrEmptyImage) {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("Error splitting %s: %w", path, err)
	}
	return page, nil
}

func saveGraph(page *panel.Page, params panel.Params, title string, fn string) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	err = panelsplit.GraphProfile(page.Profile, params.ThresholdRel*page.Profile.Max(), page.Boundaries, title, f)
	if err != nil {
		return err
	}
	return f.Close()
}

func savePDF(panels []string, fn string) error {
	var pdf panelsplit.Fpdf
	err := pdf.Setup()
	if err != nil {
		return err
	}
	for _, p := range panels {
		err = pdf.AddImage(p)
		if err != nil {
			return err
		}
	}
	return pdf.Save(fn)
}

// worker reads indexes of paths from a channel, processing each one
// and storing its result at the same index
func worker(ctx context.Context, jobs chan int, paths []string, results []Result, outdir string, opts Options, done chan bool) {
	for i := range jobs {
		results[i] = ProcessPage(ctx, paths[i], outdir, opts)
	}
	done <- true
}

// Run processes each of paths, returning a Result for each in the
// same order. Up to opts.Workers pages are processed at once. If ctx
// is cancelled no more pages are started, and each page which was
// not started has ctx.Err() as its error.
func Run(ctx context.Context, paths []string, outdir string, opts Options) []Result {
	results := make([]Result, len(paths))
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int)
	done := make(chan bool)
	for i := 0; i < workers; i++ {
		go worker(ctx, jobs, paths, results, outdir, opts, done)
	}

	next := 0
dispatch:
	for ; next < len(paths); next++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- next:
		}
	}
	close(jobs)

	for i := 0; i < workers; i++ {
		<-done
	}

	for i := next; i < len(paths); i++ {
		results[i] = Result{Path: paths[i], OutDir: filepath.Join(outdir, basename(paths[i])), Err: ctx.Err()}
	}

	return results
}

// ProcessDir splits every page image in indir, writing the panels
// into outdir. An error is only returned if the batch can't be
// started at all; per page failures are in the Results.
func ProcessDir(ctx context.Context, indir string, outdir string, opts Options) ([]Result, error) {
	err := opts.Params.Validate()
	if err != nil {
		return nil, err
	}

	paths, err := ListImages(indir)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(outdir, 0755)
	if err != nil {
		return nil, fmt.Errorf("Error creating directory %s: %w", outdir, err)
	}

	opts.logger().Printf("Processing %d pages from %s\n", len(paths), indir)
	return Run(ctx, paths, outdir, opts), nil
}
