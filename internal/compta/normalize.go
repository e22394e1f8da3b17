package compta

import (
	"strings"

	"github.com/iarmy/compta/internal/model"
)

// normalizeRules converts every persisted rule encoding into the current
// terms+target form. Three legacy shapes are accepted; anything else
// becomes an inert single-empty-term rule so loading never fails.
func normalizeRules(raw []model.RawRule) []model.Rule {
	rules := make([]model.Rule, 0, len(raw))
	for _, r := range raw {
		rules = append(rules, normalizeRule(r))
	}
	return rules
}

func normalizeRule(r model.RawRule) model.Rule {
	switch {
	case r.Terms != nil:
		terms := make([]model.Term, len(r.Terms))
		copy(terms, r.Terms)
		return model.Rule{Terms: terms, Target: r.Target}

	case r.Sources != nil:
		terms := make([]model.Term, len(r.Sources))
		for i, src := range r.Sources {
			op := model.OpAdd
			if i > 0 && i-1 < len(r.Operations) && r.Operations[i-1] != "" {
				op = model.Operator(r.Operations[i-1])
			}
			terms[i] = model.Term{Name: src, Op: op}
		}
		return model.Rule{Terms: terms, Target: r.Target}

	case r.Formula != "":
		if terms := parseFormula(r.Formula); len(terms) > 0 {
			return model.Rule{Terms: terms, Target: r.Target}
		}
		return model.Rule{Terms: []model.Term{{Op: model.OpAdd}}, Target: r.Target}

	default:
		return model.Rule{Terms: []model.Term{{Op: model.OpAdd}}}
	}
}

// parseFormula tokenizes a legacy "CB + ESP - DEP" formula string. Each
// operand takes the operator that precedes it; * and / are accepted by
// the tokenizer but only + and - are meaningful downstream. The first
// term is always forced to +.
func parseFormula(formula string) []model.Term {
	var terms []model.Term
	op := model.OpAdd
	var current strings.Builder

	flush := func() {
		name := strings.TrimSpace(current.String())
		current.Reset()
		if name != "" {
			terms = append(terms, model.Term{Name: name, Op: op})
			op = model.OpAdd
		}
	}

	for _, r := range formula {
		switch r {
		case '+', '-', '*', '/':
			flush()
			op = model.Operator(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	if len(terms) > 0 {
		terms[0].Op = model.OpAdd
	}
	return terms
}
