package handlers

import (
	"fmt"
	"net/http"
	"strings"
)

// form wraps submitted values with the two checks the views need: required
// fields and fields that must match each other. Services assume input has
// passed these checks.
type form struct {
	r      *http.Request
	Errors []string
}

func parseForm(r *http.Request) (*form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &form{r: r}, nil
}

// Get returns the trimmed submitted value.
func (f *form) Get(name string) string {
	return strings.TrimSpace(f.r.PostFormValue(name))
}

// Require marks missing fields as errors.
func (f *form) Require(names ...string) {
	for _, name := range names {
		if f.Get(name) == "" {
			label := strings.ReplaceAll(name, "_", " ")
			f.Errors = append(f.Errors, fmt.Sprintf("The %s field is required.", label))
		}
	}
}

// MustMatch requires two fields to hold the same value.
func (f *form) MustMatch(a, b, message string) {
	if f.Get(a) != f.Get(b) {
		f.Errors = append(f.Errors, message)
	}
}

// Valid reports whether the form passed all checks.
func (f *form) Valid() bool {
	return len(f.Errors) == 0
}
