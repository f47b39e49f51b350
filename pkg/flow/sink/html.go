package sink

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/matzehuels/flowdiagram/pkg/buildinfo"
	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
)

// DefaultCodeStyle is the chroma style used for the definition source.
const DefaultCodeStyle = "github"

// The markdown converter is configured once and shared; goldmark keeps
// per-call state inside Convert.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
			),
		)
	})
	return markdownInstance
}

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	codeStyle  string
	showSource bool
}

// WithCodeStyle selects the chroma style for the definition source.
func WithCodeStyle(name string) HTMLOption { return func(r *htmlRenderer) { r.codeStyle = name } }

// WithoutSource leaves the definition source off the page.
func WithoutSource() HTMLOption { return func(r *htmlRenderer) { r.showSource = false } }

type pageData struct {
	Title       string
	Generator   string
	Description template.HTML
	Diagram     template.HTML
	Source      template.HTML
	SourceCSS   template.CSS
	Format      flowio.Format
	Stats       layout.Stats
}

// RenderHTML builds a standalone showcase page for a document: its title,
// the markdown description, the inline diagram and the highlighted source
// the diagram was built from. svg is embedded as is; pass the output of
// [RenderSVG] for tree.
//
// Raw HTML inside the description is dropped.
func RenderHTML(doc *flowio.Document, tree *layout.Tree, svg []byte, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{codeStyle: DefaultCodeStyle, showSource: true}
	for _, opt := range opts {
		opt(&r)
	}

	data := pageData{
		Title:     doc.DisplayTitle(),
		Generator: buildinfo.Generator(),
		Diagram:   template.HTML(svg),
		Format:    doc.Format,
		Stats:     tree.Stats(),
	}
	if data.Title == "" {
		data.Title = "Flow diagram"
	}

	if doc.Description != "" {
		var md bytes.Buffer
		if err := getMarkdown().Convert([]byte(doc.Description), &md); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "render description")
		}
		data.Description = template.HTML(md.String())
	}

	if r.showSource && len(doc.Source) > 0 {
		code, css, err := highlight(doc.Source, doc.Format, r.codeStyle)
		if err != nil {
			return nil, err
		}
		data.Source = template.HTML(code)
		data.SourceCSS = template.CSS(css)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render page")
	}
	return buf.Bytes(), nil
}

// highlight renders src as class-annotated HTML plus the stylesheet for
// those classes.
func highlight(src []byte, format flowio.Format, styleName string) (code, css string, err error) {
	lexer := lexers.Get(lexerName(format))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	style := chromastyles.Get(styleName)
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(2))

	it, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return "", "", errors.Wrap(errors.ErrCodeInternal, err, "highlight source")
	}
	var codeBuf, cssBuf bytes.Buffer
	if err := formatter.Format(&codeBuf, style, it); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeInternal, err, "highlight source")
	}
	if err := formatter.WriteCSS(&cssBuf, style); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeInternal, err, "highlight source")
	}
	return codeBuf.String(), cssBuf.String(), nil
}

func lexerName(f flowio.Format) string {
	switch f {
	case flowio.FormatJSON, flowio.FormatJSONC:
		return "json"
	case flowio.FormatYAML:
		return "yaml"
	case flowio.FormatTOML:
		return "toml"
	}
	return ""
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="{{.Generator}}">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 2rem auto; max-width: 960px; padding: 0 1rem; color: #111; }
  .diagram { overflow-x: auto; margin: 2rem 0; text-align: center; }
  .stats { color: #555; font-size: 0.875rem; }
  pre.chroma { padding: 1rem; border-radius: 6px; overflow-x: auto; }
{{.SourceCSS}}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Description}}
<section class="description">
{{.Description}}</section>
{{- end}}
<figure class="diagram">
{{.Diagram}}</figure>
<p class="stats">{{.Stats.Nodes}} nodes, {{.Stats.Containers}} forks, {{.Stats.Columns}} columns, nesting depth {{.Stats.MaxDepth}}</p>
{{- if .Source}}
<section class="source">
<h2>Definition ({{.Format}})</h2>
{{.Source}}
</section>
{{- end}}
</body>
</html>
`))
