// Package dateutil resolves the date shown on standalone pages.
//
// A date value is either literal text, copied as is, or "auto" with an
// optional layout: "auto", "auto:korean", "auto:YYYY.MM.DD".
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates a malformed date layout or auto value.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxLayoutLength bounds user layouts.
const MaxLayoutLength = 50

// DefaultLayout is used by a bare "auto".
const DefaultLayout = "YYYY-MM-DD"

// autoPrefix introduces a layout after "auto".
const autoPrefix = "auto:"

// layoutTokens maps layout tokens to time.Format components, longest first
// so MMMM wins over MM.
var layoutTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named layouts accepted after "auto:".
var Presets = map[string]string{
	"iso":    "YYYY-MM-DD",
	"korean": "YYYY년 M월 D일",
	"dotted": "YYYY.MM.DD",
	"long":   "MMMM D, YYYY",
}

// Layout converts a token layout such as "YYYY년 M월 D일" to a time.Format
// layout. Text in brackets is copied literally, so "[Day] D" keeps "Day".
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: empty layout", ErrInvalidDateFormat)
	}
	if len(format) > MaxLayoutLength {
		return "", fmt.Errorf("%w: layout exceeds %d bytes", ErrInvalidDateFormat, MaxLayoutLength)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidDateFormat, format)
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		if tok, layout, ok := matchToken(rest); ok {
			b.WriteString(layout)
			rest = rest[len(tok):]
			continue
		}
		b.WriteByte(rest[0])
		rest = rest[1:]
	}
	return b.String(), nil
}

func matchToken(s string) (token, layout string, ok bool) {
	for _, t := range layoutTokens {
		if strings.HasPrefix(s, t.token) {
			return t.token, t.layout, true
		}
	}
	return "", "", false
}

// Resolve returns value with "auto" forms replaced by now formatted in the
// requested layout. Anything else, including "", is returned unchanged.
func Resolve(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	switch {
	case !strings.HasPrefix(lower, "auto"):
		return value, nil
	case lower == "auto":
		return format(now, DefaultLayout)
	case !strings.HasPrefix(lower, autoPrefix):
		return "", fmt.Errorf("%w: %q, use \"auto\" or \"auto:LAYOUT\"", ErrInvalidDateFormat, value)
	}

	layout := value[len(autoPrefix):]
	if preset, ok := Presets[strings.ToLower(layout)]; ok {
		layout = preset
	}
	return format(now, layout)
}

func format(t time.Time, layout string) (string, error) {
	goLayout, err := Layout(layout)
	if err != nil {
		return "", err
	}
	return t.Format(goLayout), nil
}
