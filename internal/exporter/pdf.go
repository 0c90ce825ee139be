package exporter

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 20.0
	pdfLineHeight = 6.0
	pdfFont       = "Helvetica"
)

// RenderPDF lays the report out on Letter pages. Text outside cp1252 is
// replaced since only the core fonts are embedded.
func RenderPDF(r Report) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetCreationDate(r.GeneratedAt)
	doc.SetModificationDate(r.GeneratedAt)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(tr(r.Title), false)
	doc.AddPage()

	doc.SetFont(pdfFont, "B", 18)
	doc.MultiCell(0, 9, tr(r.Title), "", "L", false)
	doc.SetFont(pdfFont, "I", 10)
	doc.MultiCell(0, pdfLineHeight, tr(r.GeneratedLine()), "", "L", false)
	doc.Ln(4)

	for _, sec := range r.Sections {
		doc.SetFont(pdfFont, "B", 14)
		doc.MultiCell(0, 8, tr(sec.Heading), "", "L", false)
		doc.Ln(1)
		for _, blk := range sec.Blocks {
			if blk.Label != "" {
				doc.SetFont(pdfFont, "B", 11)
				label := blk.Label
				if blk.Text != "" {
					label += " "
				}
				doc.Write(pdfLineHeight, tr(label))
			}
			if blk.Text != "" {
				doc.SetFont(pdfFont, "", 11)
				doc.Write(pdfLineHeight, tr(blk.Text))
			}
			doc.Ln(pdfLineHeight + 1)
		}
		doc.Ln(3)
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return out.Bytes(), nil
}
