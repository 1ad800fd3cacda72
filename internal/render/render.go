// Package render turns chat turns into HTML fragments for the chat widget.
package render

import (
	"bytes"
	"html"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"mindcheck-service/internal/domain"
)

// Renderer converts model markdown to sanitised HTML and escapes user text.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds a Renderer with GitHub flavoured markdown and the UGC policy.
func New() *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// Turn renders one transcript entry. Model turns are markdown; user turns are
// shown verbatim inside a paragraph.
func (r *Renderer) Turn(turn domain.ChatTurn) (template.HTML, error) {
	if turn.Role != domain.RoleModel {
		return template.HTML("<p>" + html.EscapeString(turn.Text) + "</p>"), nil
	}
	return r.Markdown(turn.Text)
}

// Markdown converts markdown to sanitised HTML.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// Error renders the inline error bubble.
func (r *Renderer) Error(message string) template.HTML {
	if message == "" {
		message = "Unknown error occurred."
	}
	return template.HTML(`<div class="chat-message error-message">Error: ` + html.EscapeString(message) + `</div>`)
}
