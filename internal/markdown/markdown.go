// Package markdown turns user-authored post and comment text into safe
// HTML for the templates: a small markdown subset rendered with goldmark,
// then sanitized with bluemonday.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/postline-dev/postline/internal/logger"
)

type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	// Inline formatting only. Posts are 200 chars, block structure
	// (headings, lists, tables) is noise at that size.
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough),
	)

	return &TextProcessor{md: md, policy: bluemonday.UGCPolicy()}
}

// Render converts raw user text into sanitized HTML. On a render failure
// the escaped raw text is returned instead, never unsanitized input.
func (tp *TextProcessor) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		logger.Log.Error("rendering user text", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(tp.policy.SanitizeBytes(buf.Bytes()))
}
