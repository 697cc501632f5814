package site

import (
	"bytes"
	"fmt"
	"html"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightLimit is the largest file that gets syntax highlighting
const highlightLimit = 1 << 20

type highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// newHighlighter uses the named chroma style, unknown names fall back to the
// chroma default
func newHighlighter(styleName string) *highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	return &highlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithLineNumbers(true),
			chromahtml.WithLinkableLineNumbers(true, "L"),
			chromahtml.TabWidth(8),
		),
	}
}

// highlight renders a text file with line numbers. The lexer is picked by
// file name first and by content second.
func (h *highlighter) highlight(name string, content []byte) (template.HTML, error) {
	if len(content) > highlightLimit {
		return plain(content), nil
	}

	text := string(content)
	lexer := lexers.Match(name)
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("failed to highlight %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil
}

func plain(content []byte) template.HTML {
	return template.HTML("<pre>" + html.EscapeString(string(content)) + "</pre>")
}
