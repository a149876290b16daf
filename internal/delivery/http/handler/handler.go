package handler

import (
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// listParams extracts search, limit and offset from the common list query
// parameters (?search=&page=&limit=).
func listParams(r *http.Request) (search string, limit, offset int) {
	q := r.URL.Query()

	search = q.Get("search")

	limit, _ = strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	offset = (page - 1) * limit

	return search, limit, offset
}
