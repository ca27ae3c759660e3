package notion

import (
	"time"
)

// Property payload builders for page writes.

func titleProp(s string) map[string]any {
	return map[string]any{"title": []map[string]any{{"text": map[string]any{"content": s}}}}
}

func richTextProp(s string) map[string]any {
	return map[string]any{"rich_text": []map[string]any{{"text": map[string]any{"content": s}}}}
}

func selectProp(name string) map[string]any {
	return map[string]any{"select": map[string]any{"name": name}}
}

func dateProp(t time.Time) map[string]any {
	return map[string]any{"date": map[string]any{"start": t.Format(time.DateOnly)}}
}

// Read-side shapes. Only the fields this client consumes are declared.

type queryResponse struct {
	Results []page `json:"results"`
}

type page struct {
	ID         string                  `json:"id"`
	Properties map[string]propertyValue `json:"properties"`
}

type propertyValue struct {
	Title    []richTextValue `json:"title"`
	RichText []richTextValue `json:"rich_text"`
	Number   *float64        `json:"number"`
	Select   *selectValue    `json:"select"`
	Date     *dateValue      `json:"date"`
}

type richTextValue struct {
	PlainText string `json:"plain_text"`
}

type selectValue struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

func (p page) plainText(prop string) string {
	v, ok := p.Properties[prop]
	if !ok {
		return ""
	}

	parts := v.RichText
	if len(parts) == 0 {
		parts = v.Title
	}

	var s string
	for _, rt := range parts {
		s += rt.PlainText
	}

	return s
}

func (p page) number(prop string) float64 {
	if v, ok := p.Properties[prop]; ok && v.Number != nil {
		return *v.Number
	}

	return 0
}

func (p page) selectName(prop string) string {
	if v, ok := p.Properties[prop]; ok && v.Select != nil {
		return v.Select.Name
	}

	return ""
}

func (p page) date(prop string) time.Time {
	v, ok := p.Properties[prop]
	if !ok || v.Date == nil {
		return time.Time{}
	}

	t, err := time.Parse(time.DateOnly, v.Date.Start)
	if err != nil {
		return time.Time{}
	}

	return t
}
