// Package gate composes named checks into an ordered list of failure reasons.
//
// Every check runs; nothing short-circuits. Callers display all blocking
// reasons at once and an empty result means the transition is permitted.
package gate

import "strings"

// Reason is one named failure produced by a Check.
type Reason struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Check is a named predicate. Pass reports whether the check is satisfied.
type Check struct {
	Code    string
	Field   string
	Message string
	Pass    func() bool
}

// Require builds a Check from an already evaluated condition.
func Require(ok bool, code, field, message string) Check {
	return Check{Code: code, Field: field, Message: message, Pass: func() bool { return ok }}
}

// Run evaluates every check in order and returns the failures.
func Run(checks ...Check) []Reason {
	reasons := make([]Reason, 0)
	for _, c := range checks {
		if c.Pass != nil && c.Pass() {
			continue
		}
		reasons = append(reasons, Reason{Code: c.Code, Field: c.Field, Message: c.Message})
	}
	return reasons
}

// Passed is true when no reason was produced.
func Passed(reasons []Reason) bool {
	return len(reasons) == 0
}

// Codes lists the reason codes, preserving order.
func Codes(reasons []Reason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, r.Code)
	}
	return out
}

// Fields lists the distinct non-empty fields named by the reasons.
func Fields(reasons []Reason) []string {
	seen := make(map[string]struct{}, len(reasons))
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if r.Field == "" {
			continue
		}
		if _, ok := seen[r.Field]; ok {
			continue
		}
		seen[r.Field] = struct{}{}
		out = append(out, r.Field)
	}
	return out
}

// Summary joins the reason messages for logs and error strings.
func Summary(reasons []Reason) string {
	msgs := make([]string, 0, len(reasons))
	for _, r := range reasons {
		msgs = append(msgs, r.Message)
	}
	return strings.Join(msgs, "; ")
}
