// Package response classifies boundary responses before they are trusted.
//
// The body is always read as text first. Valid JSON is handed back for the
// caller to interpret; anything else is either an HTML page (usually the dev
// server's index served from a wrong port) or malformed output.
package response

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

const snippetLimit = 120

// Classify returns the parsed JSON body or a wrong_content_type or
// malformed_response ConsoleError.
func Classify(resp ports.RawResponse) (gjson.Result, error) {
	text := string(resp.Body)
	if strings.TrimSpace(text) != "" && gjson.Valid(text) {
		return gjson.Parse(text), nil
	}
	if LooksLikeHTML(text) {
		return gjson.Result{}, &domain.ConsoleError{
			Kind:    domain.ErrKindWrongContentType,
			Message: fmt.Sprintf("expected JSON, received HTML (status %d)", resp.StatusCode),
			Detail:  Title(text),
		}
	}
	return gjson.Result{}, &domain.ConsoleError{
		Kind:    domain.ErrKindMalformedResponse,
		Message: fmt.Sprintf("response is not JSON (status %d)", resp.StatusCode),
		Detail:  Snippet(text),
	}
}

// LooksLikeHTML reports whether the trimmed body opens like an HTML document.
func LooksLikeHTML(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// Title extracts the text of the first <title> element, if any.
func Title(text string) string {
	z := html.NewTokenizer(strings.NewReader(text))
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(z.Text()))
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}

// Snippet shortens a body for diagnostics.
func Snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text
	}
	return string(runes[:snippetLimit]) + "..."
}
