package application

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter decides whether the case with the given ID runs.
type Filter func(caseID string) bool

// RegexFilters selects cases by ID. An empty MustMatch list matches everything.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter adapts the filters to a Filter.
func (r RegexFilters) AsFilter(caseID string) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(caseID)) &&
		!r.MustNotMatch.AnyMatch(caseID)
}

// Describe explains which cases will be skipped, or returns "" when none are.
func (r RegexFilters) Describe() string {
	var parts []string
	if r.MustMatch.IsDefined() {
		parts = append(parts, "skip any not matching "+r.MustMatch.String())
	}
	if r.MustNotMatch.IsDefined() {
		parts = append(parts, "skip any matching "+r.MustNotMatch.String())
	}
	return strings.Join(parts, "; ")
}

// RegexList is a list of patterns; it implements pflag.Value.
type RegexList struct {
	patterns []*regexp.Regexp
}

func (r *RegexList) String() string {
	if r == nil {
		return ""
	}
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser.
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

// Type names the flag value type in help output.
func (r *RegexList) Type() string {
	return "regex"
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
