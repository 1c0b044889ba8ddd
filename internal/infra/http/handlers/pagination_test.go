package handlers

import (
	"math"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/lead-management/internal/entity"
)

func TestParsePageable(t *testing.T) {
	q, _ := url.ParseQuery("page=2&size=5&sort=name,desc&sort=id")

	p := parsePageable(q)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.Size)
	assert.Equal(t, []entity.Order{
		{Property: "name", Direction: entity.Desc},
		{Property: "id", Direction: entity.Asc},
	}, p.Sort)
}

func TestParsePageableDefaults(t *testing.T) {
	q, _ := url.ParseQuery("page=abc&size=100000")

	p := parsePageable(q)

	assert.Equal(t, 0, p.Page)
	assert.Equal(t, entity.MaxPageSize, p.Size)
	assert.Empty(t, p.Sort)
	assert.Equal(t, entity.DefaultPageSize, parsePageable(url.Values{}).Size)
}

func TestParsePageableHugePageKeepsOffsetPositive(t *testing.T) {
	q, _ := url.ParseQuery("page=1152921504606846976&size=16")

	p := parsePageable(q)

	assert.Equal(t, math.MaxInt/16, p.Page)
	assert.Positive(t, p.Offset())
	assert.Greater(t, p.Offset(), 1<<60)
}

func TestParseSortSharedDirection(t *testing.T) {
	assert.Equal(t, []entity.Order{
		{Property: "name", Direction: entity.Desc},
		{Property: "phone", Direction: entity.Desc},
	}, parseSort("name,phone,DESC"))
}

func TestWritePaginationHeaders(t *testing.T) {
	u, _ := url.Parse("/api/leads?page=1&size=2&sort=id,desc")
	w := httptest.NewRecorder()

	writePaginationHeaders(w, u, entity.Page[int]{Content: []int{3, 4}, Number: 1, Size: 2, TotalElements: 5})

	assert.Equal(t, "5", w.Header().Get("X-Total-Count"))
	assert.Equal(t,
		`</api/leads?page=2&size=2&sort=id%2Cdesc>; rel="next",`+
			`</api/leads?page=0&size=2&sort=id%2Cdesc>; rel="prev",`+
			`</api/leads?page=2&size=2&sort=id%2Cdesc>; rel="last",`+
			`</api/leads?page=0&size=2&sort=id%2Cdesc>; rel="first"`,
		w.Header().Get("Link"))
}

func TestWritePaginationHeadersEmptyPage(t *testing.T) {
	u, _ := url.Parse("/api/interests")
	w := httptest.NewRecorder()

	writePaginationHeaders(w, u, entity.Page[int]{Size: 20})

	assert.Equal(t, "0", w.Header().Get("X-Total-Count"))
	assert.Equal(t,
		`</api/interests?page=0&size=20>; rel="last",</api/interests?page=0&size=20>; rel="first"`,
		w.Header().Get("Link"))
}
