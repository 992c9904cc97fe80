package frame

import (
	"strconv"
	"strings"
)

// PageQueryParam is the query parameter carrying the browse position.
const PageQueryParam = "pageIndex"

// ComputePage derives the entry page from the raw query value. Missing or
// malformed values and negative numbers land on 0; values past the end wrap.
func ComputePage(query *string, length int) int {
	if query == nil || length <= 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(*query))
	if err != nil || n < 0 {
		return 0
	}
	page := n % length
	if page < 0 || page >= length {
		return 0
	}
	return page
}

// Next returns the page after page, wrapping to 0 past the end.
func Next(page, length int) int {
	return wrap(page+1, length)
}

// Prev returns the page before page, wrapping to length-1 before 0.
func Prev(page, length int) int {
	return wrap(page-1, length)
}

func wrap(page, length int) int {
	if length <= 0 {
		return 0
	}
	return (page%length + length) % length
}
