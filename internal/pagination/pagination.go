// Package pagination implements the page/size/sort request parameters and the
// X-Total-Count / Link response headers used by the list endpoints.
package pagination

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 200
)

// Sort is one requested sort property.
type Sort struct {
	Field string
	Desc  bool
}

// Request describes one page of a larger result set.
type Request struct {
	Page int
	Size int
	Sort []Sort
}

// FromQuery parses page, size and sort query parameters, applying defaults
// and clamping size. Sort parameters use the "field,asc|desc" form and may
// repeat.
func FromQuery(q url.Values) Request {
	req := Request{Page: 0, Size: DefaultSize}

	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			req.Page = n
		}
	}
	if v := q.Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			req.Size = n
		}
	}
	if req.Size > MaxSize {
		req.Size = MaxSize
	}

	for _, s := range q["sort"] {
		field, dir, _ := strings.Cut(s, ",")
		if field == "" {
			continue
		}
		req.Sort = append(req.Sort, Sort{Field: field, Desc: strings.EqualFold(dir, "desc")})
	}

	return req
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items         []T
	Number        int
	Size          int
	TotalElements int
}

// TotalPages derives the page count from the total and the page size.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalElements + p.Size - 1) / p.Size
}

// Paginate slices items according to req. Out-of-range pages yield an empty
// page with the correct totals.
func Paginate[T any](items []T, req Request) Page[T] {
	start := req.Page * req.Size
	if start > len(items) {
		start = len(items)
	}
	end := start + req.Size
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:         items[start:end],
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: len(items),
	}
}

// SetHeaders writes the X-Total-Count header and a Link header with
// first/prev/next/last relations for the page.
func SetHeaders[T any](h http.Header, p Page[T], basePath string) {
	h.Set("X-Total-Count", strconv.Itoa(p.TotalElements))

	last := p.TotalPages() - 1
	if last < 0 {
		last = 0
	}

	var links []string
	if p.Number < last {
		links = append(links, formatLink(basePath, p.Number+1, p.Size, "next"))
	}
	if p.Number > 0 {
		links = append(links, formatLink(basePath, p.Number-1, p.Size, "prev"))
	}
	links = append(links,
		formatLink(basePath, last, p.Size, "last"),
		formatLink(basePath, 0, p.Size, "first"),
	)
	h.Set("Link", strings.Join(links, ","))
}

func formatLink(basePath string, page, size int, rel string) string {
	return fmt.Sprintf("<%s?page=%d&size=%d>; rel=%q", basePath, page, size, rel)
}
