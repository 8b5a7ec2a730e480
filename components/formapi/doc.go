// Package formapi is a small, extraction-friendly HTTP component exposing
// form documents over JSON: CRUD against a store plus a gated response
// submission endpoint. It registers on any mux that accepts net/http
// handlers, including *http.ServeMux.
package formapi
