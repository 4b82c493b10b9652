// Package paginate resolves a requested page number against a result set
// of known size. Out-of-range and malformed requests never fail: they are
// clamped to a page that exists.
package paginate

import (
	"errors"
	"strconv"
	"strings"
)

// LastPage is the page parameter value that selects the final page.
const LastPage = "last"

// Page describes one page of a paginated result set.
type Page struct {
	Number   int // 1-based page number
	NumPages int // always at least 1, even for an empty result set
	PerPage  int
	Total    int // items across all pages
}

// Resolve picks the page to show for the raw page parameter:
//   - blank or not an integer: page 1
//   - "last": the final page
//   - below 1 or beyond the final page (including integers that overflow
//     int): the final page
func Resolve(raw string, total, perPage int) Page {
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}

	numPages := (total + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}

	p := Page{Number: 1, NumPages: numPages, PerPage: perPage, Total: total}

	raw = strings.TrimSpace(raw)
	if raw == LastPage {
		p.Number = numPages
		return p
	}

	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		// An integer too large for int in either direction is out of range.
		p.Number = numPages
		return p
	}
	if err != nil {
		return p
	}
	if n < 1 || n > numPages {
		n = numPages
	}
	p.Number = n
	return p
}

// Offset returns the number of items that precede this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit returns the maximum number of items on this page.
func (p Page) Limit() int {
	return p.PerPage
}

// HasPrevious reports whether a page precedes this one.
func (p Page) HasPrevious() bool {
	return p.Number > 1
}

// HasNext reports whether a page follows this one.
func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

// PreviousNumber returns the number of the preceding page.
func (p Page) PreviousNumber() int {
	return p.Number - 1
}

// NextNumber returns the number of the following page.
func (p Page) NextNumber() int {
	return p.Number + 1
}
