// Package nav builds the search and pagination URLs of the front-end.
package nav

import (
	"net/url"
	"strconv"
	"strings"
)

// SearchURL returns the results URL for query, or "" when the query is
// blank. A safe search level outside 0..2 is left out.
func SearchURL(query string, safeSearch int) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	v := url.Values{}
	v.Set("q", query)
	if safeSearch >= 0 && safeSearch <= 2 {
		v.Set("safesearch", strconv.Itoa(safeSearch))
	}
	return "/search?" + v.Encode()
}

// Next returns the URL of the page after the one u shows. A missing or
// unreadable page number leads to page 1.
func Next(u *url.URL) string {
	page, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil {
		page = 1
	} else {
		page++
	}
	return pageURL(u, page)
}

// Previous returns the URL of the page before the one u shows, never below
// page 0. A missing or unreadable page number leads to page 0.
func Previous(u *url.URL) string {
	page, err := strconv.Atoi(u.Query().Get("page"))
	switch {
	case err != nil:
		page = 0
	case page > 0:
		page--
	}
	return pageURL(u, page)
}

func pageURL(u *url.URL, page int) string {
	v := url.Values{}
	v.Set("q", u.Query().Get("q"))
	v.Set("page", strconv.Itoa(page))
	return u.Path + "?" + v.Encode()
}

// SafeSearchParam reads the safesearch query parameter. The boolean is false
// when it is absent or not one of 0, 1 and 2.
func SafeSearchParam(v url.Values) (int, bool) {
	raw := v.Get("safesearch")
	if raw == "" {
		return 0, false
	}
	level, err := strconv.Atoi(raw)
	if err != nil || level < 0 || level > 2 {
		return 0, false
	}
	return level, true
}
