// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// panelsplit splits a directory of comic book pages into their
// panels.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"rescribe.xyz/panelsplit"
	"rescribe.xyz/panelsplit/internal/pipeline"
	"rescribe.xyz/panelsplit/panel"
)

const usage = `Usage: panelsplit [-v] [-t threshold] [-m minheight] [-white f] [-dark f] [-prefix s] [-q quality] [-j workers] [-graph] [-pdf] [-publish dir | -bucket name [-region r]] indir outdir

Splits each page image in indir into its panels, saving them into
a subdirectory of outdir named after the page, as prefix_1.jpg,
prefix_2.jpg and so on from the top of the page.

Gutters between panels are found by looking for rows with much
more edge activity than the rest of the page. Panels which are
nearly all white or nearly all dark are discarded.

If any page can't be processed the others are still done, and
panelsplit exits with status 1 once finished.

`

type Publisher interface {
	Init() error
	CreateBucket(name string) error
	Upload(bucket string, key string, path string) error
	ListObjects(bucket string, prefix string) ([]string, error)
	DeleteObjects(bucket string, keys []string) error
	Log(v ...interface{})
}

// publisher picks where saved files should be published to, if
// anywhere, and the bucket to use
func publisher(publish string, bucket string, region string, logger *log.Logger) (Publisher, string, error) {
	switch {
	case publish != "" && bucket != "":
		return nil, "", errors.New("Only one of -publish and -bucket can be used")
	case bucket != "":
		return &panelsplit.AwsConn{Region: region, Logger: logger}, bucket, nil
	case publish != "":
		return &panelsplit.LocalConn{Dir: publish, Logger: logger}, panelsplit.StoragePanels, nil
	case region != "":
		return nil, "", errors.New("-region can only be used with -bucket")
	}
	return nil, "", nil
}

func main() {
	defaults := panel.DefaultParams()
	verbose := flag.Bool("v", false, "verbose")
	threshold := flag.Float64("t", defaults.ThresholdRel, "relative height of the highest edge peak a gutter must reach (0-1)")
	minheight := flag.Int("m", defaults.MinPanelHeight, "minimum panel height in pixels")
	white := flag.Float64("white", defaults.WhiteThreshold, "proportion of near-white pixels above which a panel is discarded")
	dark := flag.Float64("dark", defaults.DarkThreshold, "proportion of dark pixels above which a panel is discarded")
	prefix := flag.String("prefix", defaults.OutputPrefix, "prefix of saved panel files")
	quality := flag.Int("q", defaults.JPEGQuality, "jpeg quality of saved panels (1-100)")
	workers := flag.Int("j", 1, "number of pages to process at once")
	graph := flag.Bool("graph", false, "save a graph of the edge profile of each page")
	pdf := flag.Bool("pdf", false, "save a pdf of the panels of each page")
	publish := flag.String("publish", "", "copy all saved files into this directory")
	bucket := flag.String("bucket", "", "upload all saved files to this s3 bucket")
	region := flag.String("region", "", "aws region of the s3 bucket")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", 0)
	} else {
		var n pipeline.NullWriter
		verboselog = log.New(n, "", 0)
	}

	opts := pipeline.Options{
		Params: panel.Params{
			ThresholdRel:   *threshold,
			MinPanelHeight: *minheight,
			WhiteThreshold: *white,
			DarkThreshold:  *dark,
			OutputPrefix:   *prefix,
			JPEGQuality:    *quality,
		},
		Workers: *workers,
		Graph:   *graph,
		PDF:     *pdf,
		Logger:  verboselog,
	}

	err := opts.Params.Validate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	conn, bucketname, err := publisher(*publish, *bucket, *region, verboselog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if conn != nil {
		opts.Bucket = bucketname
		err = conn.Init()
		if err != nil {
			log.Fatalln("Error setting up publishing connection:", err)
		}
		err = conn.CreateBucket(opts.Bucket)
		if err != nil {
			log.Fatalln("Error creating bucket:", err)
		}
		opts.Uploader = conn
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := pipeline.ProcessDir(ctx, flag.Arg(0), flag.Arg(1), opts)
	if errors.Is(err, panel.ErrInvalidParameter) {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalln(err)
	}

	err = pipeline.Report(os.Stdout, results)
	if err != nil {
		log.Fatalln("Error writing report:", err)
	}

	if pipeline.Summarise(results).Partial() {
		os.Exit(1)
	}
}
