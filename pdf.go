// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panelsplit

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nickjwhite/gofpdf"
)

const pageWidth = 5 // pageWidth in inches

// pxToPt converts a pixel value into a pt value (72 pts per inch)
// This uses pageWidth to determine the appropriate value
func pxToPt(i int) float64 {
	return float64(i) / pageWidth
}

// Fpdf is a PDF of panel images, one panel per page
type Fpdf struct {
	fpdf  *gofpdf.Fpdf
	pages int
}

// Setup creates a new PDF with appropriate settings
func (p *Fpdf) Setup() error {
	p.fpdf = gofpdf.New("P", "pt", "A4", "")
	p.fpdf.SetAutoPageBreak(false, float64(0))
	p.pages = 0
	return p.fpdf.Error()
}

// AddImage adds a page to the pdf containing the image at imgpath,
// with the page sized to fit the image
func (p *Fpdf) AddImage(imgpath string) error {
	f, err := os.Open(imgpath)
	if err != nil {
		return fmt.Errorf("Could not open file %s: %w", imgpath, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("Could not decode image %s: %w", imgpath, err)
	}

	p.fpdf.AddPageFormat("P", gofpdf.SizeType{Wd: pxToPt(cfg.Width), Ht: pxToPt(cfg.Height)})
	_ = p.fpdf.RegisterImageOptions(imgpath, gofpdf.ImageOptions{})
	p.fpdf.ImageOptions(imgpath, 0, 0, pxToPt(cfg.Width), pxToPt(cfg.Height), false, gofpdf.ImageOptions{}, 0, "")
	p.pages++

	return p.fpdf.Error()
}

// Pages returns the number of pages added so far
func (p *Fpdf) Pages() int {
	return p.pages
}

// Save saves the PDF to the file at path
func (p *Fpdf) Save(path string) error {
	return p.fpdf.OutputFileAndClose(path)
}
