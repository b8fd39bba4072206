package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
)

type rgb struct{ r, g, b int }

var (
	colorPrimary   = rgb{26, 60, 64}
	colorMuted     = rgb{108, 117, 125}
	colorBody      = rgb{60, 60, 60}
	colorFooter    = rgb{128, 128, 128}
	colorSectionBg = rgb{249, 249, 247}
	colorNoticeBg  = rgb{253, 236, 232}
	colorGood      = rgb{45, 106, 79}
	colorWarning   = rgb{212, 168, 85}
	colorBad       = rgb{201, 123, 99}
	colorWhite     = rgb{255, 255, 255}
)

const (
	pageWidth    = 210.0
	headerHeight = 25.0
	margin       = 10.0
	lineHeight   = 6.0
	labelWidth   = 60.0
	valueWidth   = 55.0
	itemWidth    = 120.0
	font         = "Helvetica"
)

// Renderer turns report documents into PDF, Markdown or HTML.
type Renderer struct {
	logger arbor.ILogger
}

func NewRenderer(logger arbor.ILogger) *Renderer {
	return &Renderer{logger: logger}
}

// RenderPDF draws doc on A4 pages, one document page per PDF page plus any
// overflow pages.
func (r *Renderer) RenderPDF(doc Document) ([]byte, error) {
	r.logger.Debug().
		Str("title", doc.Title).
		Int("pages", len(doc.Pages)).
		Msg("Rendering report to PDF")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Title, true)
	if doc.Author != "" {
		pdf.SetAuthor(doc.Author, true)
	}

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetHeaderFunc(func() { w.header(doc) })
	pdf.SetFooterFunc(func() { w.footer(doc) })

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, s := range page.Sections {
			w.section(s)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error().Err(err).Msg("Failed to generate PDF output")
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	r.logger.Debug().Int("pdf_size", buf.Len()).Msg("PDF generated successfully")
	return buf.Bytes(), nil
}

// PageCount reads a rendered PDF and returns its number of pages.
func PageCount(pdf []byte) (int, error) {
	ctx, err := api.ReadContext(bytes.NewReader(pdf), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	return ctx.PageCount, nil
}

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *pdfWriter) textColor(c rgb) { w.pdf.SetTextColor(c.r, c.g, c.b) }
func (w *pdfWriter) fillColor(c rgb) { w.pdf.SetFillColor(c.r, c.g, c.b) }

func (w *pdfWriter) cell(width float64, txt string, ln int, align string, fill bool) {
	w.pdf.CellFormat(width, lineHeight, w.tr(txt), "", ln, align, fill, 0, "")
}

func (w *pdfWriter) header(doc Document) {
	w.fillColor(colorPrimary)
	w.pdf.Rect(0, 0, pageWidth, headerHeight, "F")
	w.pdf.SetFont(font, "B", 18)
	w.textColor(colorWhite)
	w.pdf.SetY(6)
	w.pdf.CellFormat(0, 10, w.tr(doc.Title), "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		w.pdf.SetFont(font, "", 10)
		w.pdf.CellFormat(0, 5, w.tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	w.pdf.SetY(headerHeight + 8)
}

func (w *pdfWriter) footer(doc Document) {
	w.pdf.SetY(-15)
	w.pdf.SetFont(font, "I", 8)
	w.textColor(colorFooter)
	txt := fmt.Sprintf("Page %d", w.pdf.PageNo())
	if doc.Footer != "" {
		txt += " | " + doc.Footer
	}
	w.pdf.CellFormat(0, 10, w.tr(txt), "", 0, "C", false, 0, "")
}

func (w *pdfWriter) section(s Section) {
	w.pdf.SetFont(font, "B", 12)
	w.textColor(colorPrimary)
	if s.Kind == KindNotice {
		w.fillColor(colorNoticeBg)
	} else {
		w.fillColor(colorSectionBg)
	}
	w.pdf.CellFormat(0, 8, w.tr("  "+s.Title), "", 1, "L", true, 0, "")
	w.pdf.Ln(2)

	switch s.Kind {
	case KindSchedule:
		w.schedule(s)
	case KindStatement:
		w.statement(s)
	case KindNotes:
		w.notes(s)
	default:
		for _, l := range s.Lines {
			w.metric(l)
		}
	}

	if s.Note != "" && s.Kind != KindSchedule {
		w.pdf.SetFont(font, "I", 9)
		w.textColor(colorMuted)
		w.pdf.MultiCell(0, 5, w.tr(s.Note), "", "L", false)
	}
	w.pdf.Ln(4)
}

func (w *pdfWriter) metric(l Line) {
	w.pdf.SetFont(font, "", 10)
	w.textColor(colorMuted)
	w.cell(labelWidth, l.Label, 0, "L", false)

	w.pdf.SetFont(font, "B", 10)
	if l.Status == "" && l.Tone != ToneNeutral {
		w.textColor(toneColor(l.Tone))
	} else {
		w.textColor(colorPrimary)
	}
	if l.Status == "" {
		w.cell(0, l.Value, 1, "L", false)
		return
	}
	w.cell(valueWidth, l.Value, 0, "L", false)

	w.pdf.SetFont(font, "I", 9)
	w.textColor(toneColor(l.Tone))
	w.cell(0, l.Status, 1, "L", false)
}

func (w *pdfWriter) schedule(s Section) {
	w.pdf.SetFont(font, "", 10)
	w.textColor(colorBody)
	for _, l := range s.Lines {
		w.cell(itemWidth, "  - "+l.Label, 0, "L", false)
		w.cell(0, l.Value, 1, "L", false)
	}
	if s.Note != "" {
		w.pdf.SetFont(font, "I", 9)
		w.textColor(colorMuted)
		w.cell(0, "  "+s.Note, 1, "L", false)
	}
}

func (w *pdfWriter) statement(s Section) {
	for _, l := range s.Lines {
		height := lineHeight
		switch l.Style {
		case StyleItem:
			w.pdf.SetFont(font, "", 10)
			w.textColor(rgb{80, 80, 80})
		case StyleTotal:
			w.pdf.SetFont(font, "B", 10)
			w.textColor(colorPrimary)
		case StyleResult:
			w.pdf.Ln(2)
			w.pdf.SetDrawColor(colorPrimary.r, colorPrimary.g, colorPrimary.b)
			y := w.pdf.GetY()
			w.pdf.Line(margin, y, pageWidth-margin, y)
			w.pdf.Ln(2)
			w.pdf.SetFont(font, "B", 12)
			height = 8
		default:
			w.pdf.SetFont(font, "I", 10)
		}
		if l.Tone != ToneNeutral {
			w.textColor(toneColor(l.Tone))
		}

		indent := "  "
		if l.Style == StyleItem {
			indent = "    "
		}
		w.pdf.CellFormat(100, height, w.tr(indent+l.Label), "", 0, "L", false, 0, "")
		w.pdf.CellFormat(0, height, w.tr(l.Value), "", 1, "R", false, 0, "")
	}
}

func (w *pdfWriter) notes(s Section) {
	w.pdf.SetFont(font, "I", 9)
	w.textColor(colorFooter)
	for _, l := range s.Lines {
		w.pdf.MultiCell(0, 5, w.tr(l.Value), "", "L", false)
	}
}

func toneColor(t Tone) rgb {
	switch t {
	case ToneGood:
		return colorGood
	case ToneWarning:
		return colorWarning
	case ToneBad:
		return colorBad
	default:
		return colorPrimary
	}
}
