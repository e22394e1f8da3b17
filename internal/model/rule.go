package model

// Operator is the sign applied to a rule term.
type Operator string

// Rule term operators.
const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
)

// Valid reports whether the operator is one of the supported signs.
func (o Operator) Valid() bool {
	return o == OpAdd || o == OpSubtract
}

// Term is a single signed reference to a keyword inside a rule.
type Term struct {
	Name string   `json:"name"`
	Op   Operator `json:"op"`
}

// MinRuleTerms is the smallest number of terms a rule may hold while
// being edited.
const MinRuleTerms = 2

// Rule computes a derived value from a signed sum of keyword values and
// writes it to a target column.
type Rule struct {
	Terms  []Term `json:"terms"`
	Target string `json:"target"`
}

// IsValid reports whether the rule is complete enough to persist and
// evaluate: a target plus at least one named term.
func (r Rule) IsValid() bool {
	if r.Target == "" {
		return false
	}
	for _, t := range r.Terms {
		if t.Name != "" {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the rule carries no user content at all.
func (r Rule) IsEmpty() bool {
	if r.Target != "" {
		return false
	}
	for _, t := range r.Terms {
		if t.Name != "" {
			return false
		}
	}
	return true
}

// NamedTerms returns the terms that reference a keyword.
func (r Rule) NamedTerms() []Term {
	out := make([]Term, 0, len(r.Terms))
	for _, t := range r.Terms {
		if t.Name != "" {
			out = append(out, t)
		}
	}
	return out
}
