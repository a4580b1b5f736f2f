package renderer

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown converts summaries to HTML. Raw HTML in the source is dropped.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// MarkdownHTML converts markdown source to an HTML fragment.
func MarkdownHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
