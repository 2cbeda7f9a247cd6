package handling

import (
	"coffeeshop_server/lib"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PathID parses the {id} URL parameter.
func PathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, lib.NullParam("id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &lib.Error{Kind: lib.KindNoValidID, Message: fmt.Sprintf("id %q is not an integer", raw), Err: err}
	}
	if id < 0 {
		return 0, lib.NoValidID(id)
	}
	return id, nil
}

// PageParams reads the page and limit query parameters. paged is false
// when neither is present; supplying only one of them is an error.
func PageParams(r *http.Request) (page, limit int, paged bool, err error) {
	query := r.URL.Query()
	rawPage, hasPage := query.Get("page"), query.Has("page")
	rawLimit, hasLimit := query.Get("limit"), query.Has("limit")

	switch {
	case !hasPage && !hasLimit:
		return 0, 0, false, nil
	case !hasPage:
		return 0, 0, false, lib.NullParam("page")
	case !hasLimit:
		return 0, 0, false, lib.NullParam("limit")
	}

	if page, err = strconv.Atoi(rawPage); err != nil {
		return 0, 0, false, &lib.Error{Kind: lib.KindNoValidPage, Message: fmt.Sprintf("page %q is not an integer", rawPage), Err: err}
	}
	if limit, err = strconv.Atoi(rawLimit); err != nil {
		return 0, 0, false, &lib.Error{Kind: lib.KindNoValidLimit, Message: fmt.Sprintf("limit %q is not an integer", rawLimit), Err: err}
	}
	if page < 0 {
		return 0, 0, false, lib.NoValidPage(page)
	}
	if limit < 1 {
		return 0, 0, false, lib.NoValidLimit(limit)
	}
	return page, limit, true, nil
}
