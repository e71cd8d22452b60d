package common

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"
)

type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message recorded for a field.
func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MaxRunes counts characters, not bytes, so titles in any script get the same budget.
func (v *Validator) MaxRunes(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

func (v *Validator) PermittedValue(value string, permitted ...string) bool {
	return slices.Contains(permitted, value)
}

// ImageReference accepts site-relative paths, http(s) URLs and inline data URIs.
func (v *Validator) ImageReference(ref string) bool {
	switch {
	case strings.HasPrefix(ref, "/"):
		return true
	case strings.HasPrefix(ref, "data:image/"):
		return strings.Contains(ref, ",")
	}

	u, err := url.Parse(ref)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}
