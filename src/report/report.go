// Package report writes a Markdown gallery of rendered figures and its HTML rendering.
package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/crossXproduct/random-walk-1/src/figure"
)

// File names written by Write.
const (
	MarkdownFile = "report.md"
	HTMLFile     = "report.html"
)

// Entry is one rendered figure: its spec and the image path relative to the report.
type Entry struct {
	Spec  figure.Spec
	Image string
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "|", `\|`, "#", `\#`,
)

func esc(s string) string { return mdEscaper.Replace(s) }

// Markdown builds the report body.
func Markdown(title, summary string, entries []Entry) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", esc(title))
	if summary != "" {
		fmt.Fprintf(&b, "%s\n\n", esc(summary))
	}
	for _, e := range entries {
		heading := e.Spec.Title
		if heading == "" {
			heading = e.Spec.Output
		}
		fmt.Fprintf(&b, "## %s\n\n", esc(heading))
		fmt.Fprintf(&b, "![%s](%s)\n\n", esc(e.Spec.Output), filepath.ToSlash(e.Image))
		b.WriteString("| Label | Role | File | Points |\n|---|---|---|---:|\n")
		for _, l := range e.Spec.Layers {
			fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", esc(l.Label), l.Series.Role, esc(l.Series.Name), l.Series.Len())
		}
		b.WriteString("\n")
	}
	return b.Bytes()
}

// HTML converts Markdown output to a standalone HTML page.
func HTML(title string, md []byte) ([]byte, error) {
	conv := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := conv.Convert(md, &body); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	fmt.Fprintf(&out, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(title))
	out.WriteString("<style>body{font-family:sans-serif;max-width:1200px;margin:auto}img{max-width:100%}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:2px 8px}</style>\n")
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

// Write stores report.md and report.html in dir and returns their paths.
func Write(dir, title, summary string, entries []Entry) ([]string, error) {
	md := Markdown(title, summary, entries)
	page, err := HTML(title, md)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	mdPath := filepath.Join(dir, MarkdownFile)
	htmlPath := filepath.Join(dir, HTMLFile)
	if err := os.WriteFile(mdPath, md, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", mdPath, err)
	}
	if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", htmlPath, err)
	}
	return []string{mdPath, htmlPath}, nil
}
