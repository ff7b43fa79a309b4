// Package payload turns untrusted search output into a ResultPayload.
//
// Normalize never fails: anything missing or of the wrong JSON type degrades
// to an empty value. Parse is the separate, fallible step that turns text into
// JSON and reports syntax errors to the caller.
package payload

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/doeshing/synora-ui/internal/domain"
)

// Parse decodes manually supplied text. A syntax error is returned as a
// payload_parse ConsoleError and no payload is produced.
func Parse(text string) (domain.ResultPayload, error) {
	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return domain.ResultPayload{}, domain.NewError(domain.ErrKindPayloadParse, "invalid JSON", err)
	}
	return Normalize([]byte(text)), nil
}

// Normalize coerces raw JSON into the payload shape.
func Normalize(raw []byte) domain.ResultPayload {
	if !gjson.ValidBytes(raw) {
		return empty()
	}
	return fromResult(gjson.ParseBytes(raw))
}

// NormalizeValue accepts an already decoded JSON value.
func NormalizeValue(v any) domain.ResultPayload {
	raw, err := json.Marshal(v)
	if err != nil {
		return empty()
	}
	return Normalize(raw)
}

func empty() domain.ResultPayload {
	return domain.ResultPayload{Groups: []domain.ResultGroup{}}
}

func fromResult(root gjson.Result) domain.ResultPayload {
	p := empty()
	if !root.IsObject() {
		return p
	}
	p.Query = text(root.Get("query"))

	groups := root.Get("groups")
	if !groups.IsArray() {
		return p
	}
	for _, g := range groups.Array() {
		p.Groups = append(p.Groups, groupFrom(g))
	}
	return p
}

func groupFrom(g gjson.Result) domain.ResultGroup {
	group := domain.ResultGroup{Items: []domain.ResultItem{}}
	if !g.IsObject() {
		return group
	}
	// only a string can ever equal a type filter
	if t := g.Get("type"); t.Type == gjson.String {
		group.Type = t.Str
	}
	items := g.Get("items")
	if !items.IsArray() {
		return group
	}
	for _, it := range items.Array() {
		group.Items = append(group.Items, itemFrom(it))
	}
	return group
}

func itemFrom(it gjson.Result) domain.ResultItem {
	if !it.IsObject() {
		return domain.ResultItem{}
	}
	item := domain.ResultItem{
		Title:    text(it.Get("title")),
		Subtitle: text(it.Get("subtitle")),
		ActionID: text(it.Get("action_id")),
	}
	if risk := it.Get("risk_level"); risk.Type == gjson.String {
		item.RiskLevel = risk.Str
	}
	item.Confidence = number(it.Get("confidence"))
	return item
}

// text accepts strings and numbers; everything else reads as empty.
func text(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	default:
		return ""
	}
}

func number(r gjson.Result) *float64 {
	switch r.Type {
	case gjson.Number:
		v := r.Num
		return &v
	case gjson.String:
		v, err := strconv.ParseFloat(r.Str, 64)
		if err != nil {
			return nil
		}
		return &v
	default:
		return nil
	}
}
