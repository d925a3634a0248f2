// Package docgen renders report payloads into downloadable documents.
package docgen

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeCSV   = "text/csv"
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF   = "application/pdf"

	ExtensionCSV   = "csv"
	ExtensionExcel = "xlsx"
	ExtensionPDF   = "pdf"
)

type Section struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type Document struct {
	Title    string    `json:"title"`
	Period   string    `json:"period"`
	Sections []Section `json:"sections"`
}

func RenderCSV(doc Document) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	for i, section := range doc.Sections {
		if i > 0 {
			if err := w.Write([]string{}); err != nil {
				return nil, fmt.Errorf("failed to write csv separator: %w", err)
			}
		}

		if err := w.Write([]string{section.Title}); err != nil {
			return nil, fmt.Errorf("failed to write csv section title: %w", err)
		}

		if err := w.Write(section.Headers); err != nil {
			return nil, fmt.Errorf("failed to write csv headers: %w", err)
		}

		for _, row := range section.Rows {
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func RenderExcel(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, section := range doc.Sections {
		name := sheetName(section.Title, i)

		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("failed to create sheet: %w", err)
			}
		}

		if err := f.SetSheetRow(name, "A1", &section.Headers); err != nil {
			return nil, fmt.Errorf("failed to write excel headers: %w", err)
		}

		for r, row := range section.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve excel cell: %w", err)
			}

			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write excel row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}

	return buf.Bytes(), nil
}

func RenderPDF(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, doc.Period, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, section := range doc.Sections {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, section.Title, "", 1, "L", false, 0, "")

		colWidth := 190.0
		if len(section.Headers) > 0 {
			colWidth = 190.0 / float64(len(section.Headers))
		}

		pdf.SetFont("Arial", "B", 9)

		for _, header := range section.Headers {
			pdf.CellFormat(colWidth, 7, header, "1", 0, "L", false, 0, "")
		}

		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)

		for _, row := range section.Rows {
			for _, value := range row {
				pdf.CellFormat(colWidth, 6, value, "1", 0, "L", false, 0, "")
			}

			pdf.Ln(-1)
		}

		pdf.Ln(4)
	}

	var buf bytes.Buffer

	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf buffer: %w", err)
	}

	return buf.Bytes(), nil
}

// sheetName keeps Excel's 31-character sheet name limit. Truncated titles
// carry the section index so two long titles sharing a prefix still get
// distinct sheets.
func sheetName(title string, index int) string {
	if title == "" {
		return fmt.Sprintf("Sheet%d", index+1)
	}

	if len(title) > 31 {
		return fmt.Sprintf("%s~%d", title[:28], index+1)
	}

	return title
}
