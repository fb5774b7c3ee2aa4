// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// selectpages copies chosen pages of a book into another directory
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"rescribe.xyz/panelsplit/internal/selection"
)

const usage = `Usage: selectpages [-v] [-exclude] [-c chapters] [-p pages] srcdir dstdir

Copies page images named CCCPPP.png, where CCC is the chapter number
and PPP the page number, from srcdir to dstdir. Chapters and pages
are given as a comma separated list of numbers and ranges, like
1,3,5-7, or "all".

By default the pages which match both lists are copied. With
-exclude, every page except those is copied instead.

`

func main() {
	verbose := flag.Bool("v", false, "verbose")
	exclude := flag.Bool("exclude", false, "copy every page except those chosen")
	chapters := flag.String("c", "all", "chapters to choose")
	pages := flag.String("p", "all", "pages to choose")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	var f selection.Filter
	var err error
	f.Chapters, err = selection.ParseList(*chapters)
	if err != nil {
		log.Fatalln("Error parsing chapters:", err)
	}
	f.Pages, err = selection.ParseList(*pages)
	if err != nil {
		log.Fatalln("Error parsing pages:", err)
	}
	if *exclude {
		f.Mode = selection.Exclude
	}

	copied, err := selection.Copy(context.Background(), flag.Arg(0), flag.Arg(1), f)
	if *verbose {
		for _, n := range copied {
			log.Println("Copied", n)
		}
	}
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Copied %d pages\n", len(copied))
}
