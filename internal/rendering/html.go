package rendering

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/jonathan/cardcopy/internal/types"
)

// markdown renders model text as CommonMark. Raw HTML in the input is omitted
// and single newlines become line breaks.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// BodyHTML renders body text to an HTML fragment.
func BodyHTML(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", &RenderError{Message: "failed to convert body text", Cause: err}
	}
	return buf.String(), nil
}

// WithHTML returns content with BodyHTML filled from its body text.
func WithHTML(content types.GeneratedContent) (types.GeneratedContent, error) {
	rendered, err := BodyHTML(content.BodyText)
	if err != nil {
		return content, err
	}
	content.BodyHTML = rendered
	return content, nil
}
