package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 190.0
	lineHeight  = 6.0
	cellHeight  = 7.0
	headingSize = 12
)

// Section is a titled block of a Document.
type Section struct {
	Heading string
	Lines   []string
}

// Document is free-form PDF content such as a resume.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

func newPDF() (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252; translate UTF-8 input so names with accents survive.
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *gofpdf.Fpdf, tr func(string) string, title, subtitle string) {
	if title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	}
	if subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, lineHeight, tr(subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
}

// TablePDF renders a titled table, splitting the page width evenly between columns.
func TablePDF(title, subtitle string, t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one column")
	}
	pdf, tr := newPDF()
	writeHeader(pdf, tr, title, subtitle)

	width := pageWidth / float64(len(t.Columns))
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range t.Columns {
		pdf.CellFormat(width, cellHeight+1, tr(col), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range t.Rows {
		for i := range t.Columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(width, cellHeight, tr(cell), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return output(pdf)
}

// DocumentPDF renders headed sections of wrapped text.
func DocumentPDF(doc Document) ([]byte, error) {
	if strings.TrimSpace(doc.Title) == "" {
		return nil, fmt.Errorf("pdf document requires a title")
	}
	pdf, tr := newPDF()
	writeHeader(pdf, tr, doc.Title, doc.Subtitle)

	for _, section := range doc.Sections {
		if len(section.Lines) == 0 {
			continue
		}
		pdf.SetFont("Arial", "B", headingSize)
		pdf.CellFormat(0, 8, tr(strings.ToUpper(section.Heading)), "B", 1, "", false, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Arial", "", 10)
		for _, line := range section.Lines {
			pdf.MultiCell(0, lineHeight, tr(line), "", "", false)
		}
		pdf.Ln(3)
	}
	return output(pdf)
}
