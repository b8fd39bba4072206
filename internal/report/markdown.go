package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// RenderMarkdown writes doc as GitHub flavoured Markdown, one table per
// section and a rule between pages.
func RenderMarkdown(doc Document) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", doc.Title)
	if doc.Subtitle != "" {
		fmt.Fprintf(&sb, "_%s_\n\n", doc.Subtitle)
	}

	for i, page := range doc.Pages {
		if i > 0 {
			sb.WriteString("---\n\n")
		}
		for _, s := range page.Sections {
			writeMarkdownSection(&sb, s)
		}
	}

	if doc.Footer != "" {
		fmt.Fprintf(&sb, "---\n\n_%s_\n", escapeCell(doc.Footer))
	}
	return sb.String()
}

func writeMarkdownSection(sb *strings.Builder, s Section) {
	fmt.Fprintf(sb, "## %s\n\n", s.Title)

	switch s.Kind {
	case KindNotes:
		for _, l := range s.Lines {
			fmt.Fprintf(sb, "- %s\n", l.Value)
		}
		sb.WriteString("\n")
		return
	case KindNotice:
		sb.WriteString("> **Attention**\n\n")
	}

	if len(s.Lines) > 0 {
		sb.WriteString("| Item | Value | Status |\n")
		sb.WriteString("| --- | ---: | --- |\n")
		for _, l := range s.Lines {
			label := escapeCell(strings.TrimSuffix(l.Label, ":"))
			value := escapeCell(l.Value)
			if l.Style == StyleTotal || l.Style == StyleResult {
				label, value = "**"+label+"**", "**"+value+"**"
			}
			fmt.Fprintf(sb, "| %s | %s | %s |\n", label, value, escapeCell(l.Status))
		}
		sb.WriteString("\n")
	}

	if s.Note != "" {
		fmt.Fprintf(sb, "_%s_\n\n", escapeCell(s.Note))
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #1A3C40; background: #F9F9F7; max-width: 860px; margin: 0 auto; padding: 24px; }
h1 { background: #1A3C40; color: #FFFFFF; padding: 16px; text-align: center; }
h2 { background: #FFFFFF; border-left: 4px solid #C38D56; padding: 6px 10px; font-size: 1.05rem; }
table { border-collapse: collapse; width: 100%%; background: #FFFFFF; }
th, td { border-bottom: 1px solid #DEE2E6; padding: 6px 10px; text-align: left; }
td:nth-child(2) { text-align: right; }
blockquote { border-left: 4px solid #C97B63; margin: 0; padding-left: 12px; color: #C97B63; }
em { color: #6C757D; }
</style>
</head>
<body>
%s
</body>
</html>
`

// RenderHTML converts the Markdown rendition of doc into a standalone HTML
// page.
func (r *Renderer) RenderHTML(doc Document) ([]byte, error) {
	markdown := RenderMarkdown(doc)
	r.logger.Debug().Int("markdown_len", len(markdown)).Msg("Converting report markdown to HTML")

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		r.logger.Error().Err(err).Msg("Failed to convert report markdown to HTML")
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	title := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(doc.Title)
	return []byte(fmt.Sprintf(htmlTemplate, title, body.String())), nil
}
