package compta

import "github.com/iarmy/compta/internal/model"

// AddRule appends a rule with two empty terms and no target, returning
// its index.
func (s *Session) AddRule() int {
	s.rules = append(s.rules, model.Rule{
		Terms: []model.Term{{Op: model.OpAdd}, {Op: model.OpAdd}},
	})
	s.markDirty()
	return len(s.rules) - 1
}

// SetRuleTermName points a rule term at a keyword name.
func (s *Session) SetRuleTermName(ruleIndex, termIndex int, name string) MutationResult {
	if err := s.checkTerm(ruleIndex, termIndex); err != "" {
		return rejected(err)
	}
	s.rules[ruleIndex].Terms[termIndex].Name = name
	s.markDirty()
	return applied()
}

// SetRuleTermOp changes a term's sign. Anything other than + or - is
// ignored.
func (s *Session) SetRuleTermOp(ruleIndex, termIndex int, op model.Operator) MutationResult {
	if err := s.checkTerm(ruleIndex, termIndex); err != "" {
		return rejected(err)
	}
	if !op.Valid() {
		return rejected("")
	}
	s.rules[ruleIndex].Terms[termIndex].Op = op
	s.markDirty()
	return applied()
}

// SetRuleTarget reassigns the column a rule writes to.
func (s *Session) SetRuleTarget(ruleIndex int, target string) MutationResult {
	if ruleIndex < 0 || ruleIndex >= len(s.rules) {
		return rejected("no such rule")
	}
	s.rules[ruleIndex].Target = target
	s.markDirty()
	return applied()
}

// AddRuleTerm appends an empty term to a rule.
func (s *Session) AddRuleTerm(ruleIndex int) MutationResult {
	if ruleIndex < 0 || ruleIndex >= len(s.rules) {
		return rejected("no such rule")
	}
	s.rules[ruleIndex].Terms = append(s.rules[ruleIndex].Terms, model.Term{Op: model.OpAdd})
	s.markDirty()
	return applied()
}

// DeleteRuleTerm removes a term. A rule never drops below two terms;
// removal at the threshold is a silent no-op. The first remaining term's
// operator is re-normalized to +.
func (s *Session) DeleteRuleTerm(ruleIndex, termIndex int) MutationResult {
	if err := s.checkTerm(ruleIndex, termIndex); err != "" {
		return rejected(err)
	}
	terms := s.rules[ruleIndex].Terms
	if len(terms) <= model.MinRuleTerms {
		return rejected("")
	}
	terms = append(terms[:termIndex], terms[termIndex+1:]...)
	terms[0].Op = model.OpAdd
	s.rules[ruleIndex].Terms = terms
	s.markDirty()
	return applied()
}

// DeleteRule removes a rule. Fully empty rules go silently; anything
// with content requires confirmation.
func (s *Session) DeleteRule(ruleIndex int) MutationResult {
	if ruleIndex < 0 || ruleIndex >= len(s.rules) {
		return rejected("no such rule")
	}
	if s.rules[ruleIndex].IsEmpty() {
		s.rules = append(s.rules[:ruleIndex], s.rules[ruleIndex+1:]...)
		s.markDirty()
		return applied()
	}
	return s.stageConfirmation(ConfirmDeleteRule, ruleIndex, s.rules[ruleIndex].Target)
}

func (s *Session) checkTerm(ruleIndex, termIndex int) string {
	if ruleIndex < 0 || ruleIndex >= len(s.rules) {
		return "no such rule"
	}
	if termIndex < 0 || termIndex >= len(s.rules[ruleIndex].Terms) {
		return "no such term"
	}
	return ""
}
