package request

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// PathParam returns the chi URL parameter name as text.
//
// chi routes on r.URL.RawPath when it is set (the path held escapes such as %2F that
// do not survive decoding), and on the already decoded r.URL.Path otherwise. Only the
// first case is unescaped here, so "Rate%2520Town" addresses the city "Rate%20Town".
// A value that is not a valid escape sequence is returned as is.
func PathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return raw
	}
	value, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return value
}
