package apiclient

import (
	"net/url"
	"strconv"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListParams are the query parameters every list endpoint accepts.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	Status  string
}

// Normalize clamps paging to sane bounds.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

func (p ListParams) Values() url.Values {
	p = p.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("per_page", strconv.Itoa(p.PerPage))
	q.Set("search", p.Search)
	q.Set("status", p.Status)
	return q
}

// Query is a RequestOption carrying the list parameters.
func (p ListParams) Query() RequestOption {
	return WithQuery(p.Values())
}
