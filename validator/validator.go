// Package validator checks a shop dataset against the relational and
// business rules the generator is meant to uphold. It accepts tables from
// any source and never stops at the first problem: every check runs and
// reports on its own.
package validator

import (
	"github.com/yeremiapane/shop-dataset/catalog"
	"github.com/yeremiapane/shop-dataset/dataset"
)

type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusError Status = "error"
)

const (
	CategorySchema     = "schema"
	CategoryIntegrity  = "integrity"
	CategoryBusiness   = "business"
	CategoryUniqueness = "unique"
	CategoryComplete   = "complete"
	CategoryFormat     = "format"
)

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Status     Status   `json:"status"`
	Violations int      `json:"violations"`
	Details    []string `json:"details,omitempty"`
	Message    string   `json:"message,omitempty"`
}

// Validator keeps no per-run state, so one value can validate many datasets
// concurrently. Monetary comparisons allow utils.MoneyEpsilon.
type Validator struct {
	resolver *catalog.Resolver
}

func New(resolver *catalog.Resolver) *Validator {
	return &Validator{resolver: resolver}
}

// Validate runs every check against snap. snap is not modified.
func (v *Validator) Validate(snap *dataset.Snapshot) *Report {
	in := newInput(snap, v)

	var results []CheckResult
	results = append(results, in.schemaChecks()...)
	results = append(results,
		in.customerReference(),
		in.orderReference(),
		in.productReference(),
		in.priceAboveCost(),
		in.categoryMapping(),
		in.orderAfterSignup(),
		in.lineTotals(),
		in.orderTotals(),
		in.distinctProducts(),
	)
	results = append(results, in.uniquenessChecks()...)
	results = append(results, in.completenessChecks()...)
	results = append(results, in.formatChecks()...)

	return &Report{Results: results}
}
