package types

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// PageEnvelope is the body of every paginated list endpoint.
type PageEnvelope[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages *int  `json:"pages,omitempty"`
}

// NewPage builds an envelope, normalizing nil items to an empty array.
func NewPage[T any](items []T, total int64, page, limit int) PageEnvelope[T] {
	if items == nil {
		items = []T{}
	}
	return PageEnvelope[T]{Items: items, Total: total, Page: page, Limit: limit}
}

// WithPages returns a copy of the envelope that also reports the page count.
func (p PageEnvelope[T]) WithPages(pages int) PageEnvelope[T] {
	p.Pages = &pages
	return p
}

// ListEnvelope is an unpaginated list with its size.
type ListEnvelope[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewList[T any](items []T) ListEnvelope[T] {
	if items == nil {
		items = []T{}
	}
	return ListEnvelope[T]{Items: items, Total: len(items)}
}
