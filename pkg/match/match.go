// Package match filters log lines with include/exclude regular expressions.
package match

import (
	"fmt"
	"regexp"
)

// Filter decides which log lines pass through to output.
// A nil *Filter passes everything.
type Filter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewFilter builds a Filter from pre-compiled patterns.
func NewFilter(include, exclude []*regexp.Regexp) *Filter {
	return &Filter{include: include, exclude: exclude}
}

// Compile builds a Filter from raw pattern strings.
func Compile(include, exclude []string) (*Filter, error) {
	in, err := compile(include)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	ex, err := compile(exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	return &Filter{include: in, exclude: ex}, nil
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Match reports whether a line should be delivered: it must match at least
// one include pattern (when any are configured) and no exclude pattern.
func (f *Filter) Match(line string) bool {
	if f == nil {
		return true
	}

	if len(f.include) > 0 {
		matched := false
		for _, re := range f.include {
			if re.MatchString(line) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.exclude {
		if re.MatchString(line) {
			return false
		}
	}

	return true
}
