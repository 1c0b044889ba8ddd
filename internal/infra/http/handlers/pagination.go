package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/xavierca1/lead-management/internal/entity"
)

// parsePageable reads page, size and sort from the query. Malformed page or
// size values fall back to the defaults.
//
//	?page=0&size=20&sort=name,asc&sort=id,desc
func parsePageable(q url.Values) entity.Pageable {
	p := entity.Pageable{Size: entity.DefaultPageSize}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("size")); err == nil {
		p.Size = v
	}
	for _, raw := range q["sort"] {
		p.Sort = append(p.Sort, parseSort(raw)...)
	}
	return p.Normalize()
}

// parseSort handles "prop", "prop,dir" and "a,b,dir". A trailing direction
// applies to every property before it.
func parseSort(raw string) []entity.Order {
	parts := strings.Split(raw, ",")
	dir := entity.Asc
	if last := strings.ToLower(strings.TrimSpace(parts[len(parts)-1])); last == "asc" || last == "desc" {
		dir = entity.Direction(last)
		parts = parts[:len(parts)-1]
	}

	var out []entity.Order
	for _, prop := range parts {
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		out = append(out, entity.Order{Property: prop, Direction: dir})
	}
	return out
}

// writePaginationHeaders sets X-Total-Count and an RFC 5988 Link header
// with next, prev, last and first relations.
func writePaginationHeaders[T any](w http.ResponseWriter, u *url.URL, page entity.Page[T]) {
	w.Header().Set("X-Total-Count", strconv.FormatInt(page.TotalElements, 10))

	lastPage := page.TotalPages() - 1
	if lastPage < 0 {
		lastPage = 0
	}

	var links []string
	if page.HasNext() {
		links = append(links, pageLink(u, page.Number+1, page.Size, "next"))
	}
	if page.HasPrevious() {
		links = append(links, pageLink(u, page.Number-1, page.Size, "prev"))
	}
	links = append(links,
		pageLink(u, lastPage, page.Size, "last"),
		pageLink(u, 0, page.Size, "first"),
	)
	w.Header().Set("Link", strings.Join(links, ","))
}

func pageLink(u *url.URL, number, size int, rel string) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(number))
	q.Set("size", strconv.Itoa(size))
	target := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return `<` + target.String() + `>; rel="` + rel + `"`
}
