package invoice

import (
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// RenderTable writes a landscape report: a title, an optional subtitle and
// one table. Column widths are spread evenly over the page.
func RenderTable(w io.Writer, title, subtitle string, headers []string, rows [][]string) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, "Page "+strconv.Itoa(pdf.PageNo())+" of {nb}", "", 0, "C", false, 0, "")
	})

	width := 0.0
	if len(headers) > 0 {
		pageW, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		width = (pageW - left - right) / float64(len(headers))
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(226, 232, 240)
		for _, h := range headers {
			pdf.CellFormat(width, 7, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(title), "", 1, "L", false, 0, "")
	if subtitle != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	header()
	if len(rows) == 0 {
		pdf.CellFormat(0, 7, "No records found.", "1", 1, "C", false, 0, "")
	}

	_, pageH := pdf.GetPageSize()
	for _, r := range rows {
		if pdf.GetY()+7 > pageH-15 {
			pdf.AddPage()
			header()
		}
		for i := range headers {
			cell := ""
			if i < len(r) {
				cell = r[i]
			}
			pdf.CellFormat(width, 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
