package compta

import (
	"reflect"
	"testing"

	"github.com/iarmy/compta/internal/model"
)

func TestAddRule(t *testing.T) {
	s := NewSession(nil, nil, nil)
	index := s.AddRule()

	rules := s.Rules()
	if index != 0 || len(rules) != 1 {
		t.Fatalf("AddRule() index = %d, rules = %d", index, len(rules))
	}
	want := model.Rule{Terms: []model.Term{{Op: model.OpAdd}, {Op: model.OpAdd}}}
	if !reflect.DeepEqual(rules[0], want) {
		t.Errorf("new rule = %+v, want %+v", rules[0], want)
	}
}

func TestSetRuleTermOp(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.AddRule()

	if res := s.SetRuleTermOp(0, 1, model.OpSubtract); !res.IsApplied() {
		t.Fatalf("SetRuleTermOp() rejected: %+v", res)
	}
	if got := s.Rules()[0].Terms[1].Op; got != model.OpSubtract {
		t.Errorf("op = %q, want -", got)
	}

	// Only + and - exist; anything else is ignored.
	if res := s.SetRuleTermOp(0, 1, model.Operator("*")); res.IsApplied() {
		t.Error("invalid operator should be rejected")
	}
	if got := s.Rules()[0].Terms[1].Op; got != model.OpSubtract {
		t.Errorf("rejected op mutated the term: %q", got)
	}
}

func TestDeleteRuleTerm(t *testing.T) {
	t.Run("keeps at least two terms", func(t *testing.T) {
		s := NewSession(nil, nil, nil)
		s.AddRule()

		res := s.DeleteRuleTerm(0, 0)
		if res.IsApplied() {
			t.Error("removal below two terms should be refused")
		}
		if got := len(s.Rules()[0].Terms); got != 2 {
			t.Errorf("terms = %d, want 2", got)
		}
	})

	t.Run("first remaining term becomes an addition", func(t *testing.T) {
		s := NewSession(nil, nil, nil)
		s.AddRule()
		s.AddRuleTerm(0)
		s.SetRuleTermName(0, 0, "CB")
		s.SetRuleTermName(0, 1, "ESP")
		s.SetRuleTermName(0, 2, "DEP")
		s.SetRuleTermOp(0, 1, model.OpSubtract)

		// Dropping the leading term promotes "- ESP" to the front, where a
		// sign makes no sense.
		if res := s.DeleteRuleTerm(0, 0); !res.IsApplied() {
			t.Fatalf("DeleteRuleTerm() rejected: %+v", res)
		}
		terms := s.Rules()[0].Terms
		want := []model.Term{{Name: "ESP", Op: model.OpAdd}, {Name: "DEP", Op: model.OpAdd}}
		if !reflect.DeepEqual(terms, want) {
			t.Errorf("terms = %+v, want %+v", terms, want)
		}
	})
}

func TestDeleteRule(t *testing.T) {
	t.Run("empty rule goes silently", func(t *testing.T) {
		s := NewSession(nil, nil, nil)
		s.AddRule()

		if res := s.DeleteRule(0); !res.IsApplied() {
			t.Fatalf("expected immediate delete, got %+v", res)
		}
		if len(s.Rules()) != 0 {
			t.Error("rule not removed")
		}
	})

	t.Run("filled rule requires confirmation", func(t *testing.T) {
		s := NewSession(nil, nil, nil)
		s.AddRule()
		s.SetRuleTermName(0, 0, "CB")
		s.SetRuleTarget(0, "TOTAL")

		res := s.DeleteRule(0)
		if res.Outcome != NeedsConfirmation || res.Confirmation == nil {
			t.Fatalf("expected confirmation, got %+v", res)
		}
		if res.Confirmation.Kind != ConfirmDeleteRule {
			t.Errorf("kind = %v, want ConfirmDeleteRule", res.Confirmation.Kind)
		}

		if confirmed := s.Confirm(res.Confirmation); !confirmed.IsApplied() {
			t.Fatalf("Confirm() rejected: %+v", confirmed)
		}
		if len(s.Rules()) != 0 {
			t.Error("confirmed delete did not remove the rule")
		}
	})
}

func TestRuleMutations_BoundsChecks(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.AddRule()

	if res := s.SetRuleTermName(5, 0, "CB"); res.IsApplied() {
		t.Error("unknown rule index accepted")
	}
	if res := s.SetRuleTermName(0, 9, "CB"); res.IsApplied() {
		t.Error("unknown term index accepted")
	}
	if res := s.SetRuleTarget(-1, "TOTAL"); res.IsApplied() {
		t.Error("negative rule index accepted")
	}
	if res := s.AddRuleTerm(3); res.IsApplied() {
		t.Error("unknown rule index accepted")
	}
}
