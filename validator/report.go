package validator

import (
	"fmt"
	"io"
	"strings"
)

// Report holds check results in the order they ran.
type Report struct {
	Results []CheckResult `json:"results"`
}

// Passed is true when no check failed or errored.
func (r *Report) Passed() bool {
	return len(r.Problems()) == 0
}

// Problems returns the checks that did not pass.
func (r *Report) Problems() []CheckResult {
	var out []CheckResult
	for _, res := range r.Results {
		if res.Status != StatusPass {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) Result(name string) (CheckResult, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return CheckResult{}, false
}

// Violations sums violations over all checks.
func (r *Report) Violations() int {
	n := 0
	for _, res := range r.Results {
		n += res.Violations
	}
	return n
}

// WriteText prints one line per check, grouped by category.
func (r *Report) WriteText(w io.Writer) error {
	category := ""
	for _, res := range r.Results {
		if res.Category != category {
			category = res.Category
			if _, err := fmt.Fprintf(w, "\n=== %s ===\n", category); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, res.line()); err != nil {
			return err
		}
	}

	summary := "validation passed"
	if !r.Passed() {
		summary = fmt.Sprintf("validation failed: %d of %d checks did not pass", len(r.Problems()), len(r.Results))
	}
	_, err := fmt.Fprintf(w, "\n%s\n", summary)
	return err
}

func (res CheckResult) line() string {
	switch res.Status {
	case StatusPass:
		return "✔ " + res.Name
	case StatusError:
		return fmt.Sprintf("❌ %s: error: %s", res.Name, res.Message)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "❌ %s: %d violation(s)", res.Name, res.Violations)
	if res.Message != "" {
		fmt.Fprintf(&b, " (%s)", res.Message)
	}
	if len(res.Details) > 0 {
		details := res.Details
		const shown = 20
		more := ""
		if len(details) > shown {
			more = fmt.Sprintf(", ... %d more", len(details)-shown)
			details = details[:shown]
		}
		fmt.Fprintf(&b, ": %s%s", strings.Join(details, ", "), more)
	}
	return b.String()
}
