package report

import "fmt"

type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat accepts pdf, md/markdown and html. An empty string means PDF.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "pdf":
		return FormatPDF, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/pdf"
	}
}

func (f Format) Extension() string {
	return "." + string(f)
}

// Render dispatches doc to the renderer for f.
func (r *Renderer) Render(doc Document, f Format) ([]byte, error) {
	switch f {
	case FormatPDF:
		return r.RenderPDF(doc)
	case FormatMarkdown:
		return []byte(RenderMarkdown(doc)), nil
	case FormatHTML:
		return r.RenderHTML(doc)
	default:
		return nil, fmt.Errorf("unsupported report format %q", f)
	}
}
