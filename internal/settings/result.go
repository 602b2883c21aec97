package settings

import "fmt"

// Result aggregates the findings of a validation pass. Errors block the
// editor from working; warnings are advisory.
type Result struct {
	Errors   []string `yaml:"errors"`
	Warnings []string `yaml:"warnings"`
}

// IsValid reports whether no errors were found. Warnings never affect validity.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
