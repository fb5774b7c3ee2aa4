// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

/*
The panelsplit package contains tools and functions for splitting comic book
pages into their individual panels. It is built around the panel package,
which does the image processing, and the panelsplit command, which runs it
over a directory of pages.

Splitting pages

Presuming you have the go tools installed, you can install the tools with
this command:
  go install rescribe.xyz/panelsplit/cmd/...

A directory of page images can then be split like this:
  panelsplit pages panels

For each page image (jpg, png, gif, bmp, tiff or webp) in the pages
directory a subdirectory of panels is created, named after the page, which
contains the panels as panel_1.jpg, panel_2.jpg and so on, from the top of
the page to the bottom.

How it works

Each page is converted to grayscale, and an edge detection filter is run
over it. The edge strength along each row is added up, giving a profile of
how "busy" each row of the page is. The borders of panels, and the gutters
between them, show up as strong peaks in this profile. Peaks which reach a
proportion of the highest one (-t, 0.3 by default) are taken as boundaries,
keeping the strongest where several are closer together than the minimum
panel height (-m, 150 pixels by default).

The page is then cut at each boundary, across its full width. Strips which
are shorter than the minimum panel height are merged into the one below.
Finally any strip which is nearly all white (more than 90% of pixels, set
with -white) or nearly all dark (more than 80%, set with -dark) is
discarded, as it will be a gutter, a blank end page, or a solid divider
rather than a real panel.

Only horizontal gutters are found, so pages with panels side by side will
have them kept together.

Extras

The panelsplit command can also draw a graph of the profile of each page,
with the threshold and boundaries marked (-graph), which is useful when
tuning the parameters for a particular comic. It can bundle the panels of
each page into a PDF (-pdf), and publish all panels to a directory tree
(-publish) or an S3 bucket (-bucket).

The selectpages command copies a subset of pages named like CCCPPP.png
(chapter and page numbers) from one directory to another, so that only the
chapters wanted are split.

All of the tools will give information on what they do and how they work
with the '-h' flag.
*/
package panelsplit
