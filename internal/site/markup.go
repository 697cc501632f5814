package site

import (
	"bytes"
	"html/template"
	"path"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	"github.com/niklasfasching/go-org/org"
)

// renderDocument turns a special file into sanitised HTML. Markdown and Org
// files are converted, everything else is shown preformatted.
func renderDocument(name string, content []byte) template.HTML {
	policy := bluemonday.UGCPolicy()

	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return template.HTML(policy.SanitizeBytes(renderMarkdown(content)))
	case ".org":
		out, err := org.New().Parse(bytes.NewReader(content), name).Write(org.NewHTMLWriter())
		if err != nil {
			return plain(content)
		}
		return template.HTML(policy.Sanitize(out))
	default:
		return plain(content)
	}
}

func renderMarkdown(content []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Footnotes)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
	})
	return markdown.ToHTML(content, p, renderer)
}
