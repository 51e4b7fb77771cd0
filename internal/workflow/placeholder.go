package workflow

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Placeholder delimiters.
const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// FuncReadToText reads the document a reference points at.
const FuncReadToText = "read_to_text"

var (
	refPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*(\.[A-Za-z_][A-Za-z0-9_-]*)*$`)
	callPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*\(\s*([^()]*?)\s*\)$`)
)

// Placeholder is one {{ ... }} span in a template.
//
// A span is either a dotted reference into the configuration
// ("commands.test") or a single-argument call wrapping one
// ("read_to_text(docs.rules)").
type Placeholder struct {
	Raw   string
	Func  string
	Ref   string
	Start int
	End   int
}

// TemplateError reports a placeholder that could not be parsed or resolved.
// Renders that hit one produce no output.
type TemplateError struct {
	Placeholder string
	Reason      string
}

func (e TemplateError) Error() string {
	return fmt.Sprintf("template error: %s: %s", e.Placeholder, e.Reason)
}

// IsTemplateError checks if an error is a TemplateError.
func IsTemplateError(err error) bool {
	var te TemplateError
	return errors.As(err, &te)
}

// Scan finds every placeholder in text, in order. Fenced code blocks and
// other markdown structure are not special.
func Scan(text string) ([]Placeholder, error) {
	var out []Placeholder

	for pos := 0; ; {
		idx := strings.Index(text[pos:], openDelim)
		if idx < 0 {
			return out, nil
		}
		start := pos + idx

		end := strings.Index(text[start+len(openDelim):], closeDelim)
		if end < 0 {
			return nil, TemplateError{Placeholder: excerpt(text[start:]), Reason: "unterminated placeholder"}
		}
		end += start + len(openDelim) + len(closeDelim)

		ph, err := parse(text[start:end])
		if err != nil {
			return nil, err
		}
		ph.Start, ph.End = start, end
		out = append(out, ph)

		pos = end
	}
}

func parse(raw string) (Placeholder, error) {
	inner := strings.TrimSpace(raw[len(openDelim) : len(raw)-len(closeDelim)])

	if refPattern.MatchString(inner) {
		return Placeholder{Raw: raw, Ref: inner}, nil
	}

	if m := callPattern.FindStringSubmatch(inner); m != nil {
		if !refPattern.MatchString(m[2]) {
			return Placeholder{}, TemplateError{Placeholder: raw, Reason: "function argument must be a configuration reference"}
		}
		return Placeholder{Raw: raw, Func: m[1], Ref: m[2]}, nil
	}

	return Placeholder{}, TemplateError{Placeholder: raw, Reason: "malformed placeholder"}
}

func excerpt(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
