package apiclient

import (
	"bytes"
	"encoding/json"
)

// Envelope is the {success, data, message} wrapper every endpoint answers
// with.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Created is the data of create endpoints that only echo the new id.
type Created struct {
	ID int64 `json:"id"`
}

type PageMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// Page is a list payload. The API returns either a bare array or a
// paginator object {data:[...], current_page, per_page, total, last_page}.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

func (p *Page[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		p.Items = nil
		return nil
	}
	if b[0] == '[' {
		if err := json.Unmarshal(b, &p.Items); err != nil {
			return err
		}
		p.Meta = PageMeta{CurrentPage: 1, PerPage: len(p.Items), Total: len(p.Items), LastPage: 1}
		return nil
	}

	var obj struct {
		Data []T `json:"data"`
		PageMeta
		Meta *PageMeta `json:"meta"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	p.Items = obj.Data
	p.Meta = obj.PageMeta
	if obj.Meta != nil {
		p.Meta = *obj.Meta
	}
	return nil
}

func (p Page[T]) MarshalJSON() ([]byte, error) {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(struct {
		Items []T      `json:"items"`
		Meta  PageMeta `json:"meta"`
	}{items, p.Meta})
}
