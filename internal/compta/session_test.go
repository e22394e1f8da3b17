package compta

import (
	"reflect"
	"testing"

	"github.com/iarmy/compta/internal/model"
)

func TestAddKeyword_ColumnSelection(t *testing.T) {
	tests := []struct {
		name       string
		headers    model.SheetHeaders
		existing   []model.Keyword
		wantColumn string
	}{
		{
			name:       "empty session skips column A",
			wantColumn: "B",
		},
		{
			name: "skips columns used by keywords",
			existing: []model.Keyword{
				{Name: "CB", Column: "B", Aliases: []string{"cb"}},
				{Name: "ESP", Column: "C", Aliases: []string{"esp"}},
			},
			wantColumn: "D",
		},
		{
			name:       "skips columns the sheet already labels",
			headers:    model.SheetHeaders{"B": "Date", "C": "Notes"},
			wantColumn: "D",
		},
		{
			name:    "skips both kinds of taken columns",
			headers: model.SheetHeaders{"B": "Date"},
			existing: []model.Keyword{
				{Name: "CB", Column: "C", Aliases: []string{"cb"}},
			},
			wantColumn: "D",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(&model.ComptaConfig{Keywords: tt.existing}, tt.headers, nil)
			index := s.AddKeyword()

			keywords := s.Keywords()
			if index != len(keywords)-1 {
				t.Errorf("AddKeyword() index = %d, want %d", index, len(keywords)-1)
			}
			if got := keywords[index].Column; got != tt.wantColumn {
				t.Errorf("AddKeyword() column = %q, want %q", got, tt.wantColumn)
			}
			if keywords[index].Name != "" {
				t.Errorf("new keyword should start unnamed, got %q", keywords[index].Name)
			}
		})
	}
}

func TestSetKeywordName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantName    string
		wantApplied bool
	}{
		{
			name:        "upper-cases the value",
			input:       "especes",
			wantName:    "ESPECES",
			wantApplied: true,
		},
		{
			name:        "clips to twenty characters",
			input:       "une tres longue colonne de caisse",
			wantName:    "UNE TRES LONGUE COLO",
			wantApplied: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(nil, nil, nil)
			i := s.AddKeyword()

			res := s.SetKeywordName(i, tt.input)
			if res.IsApplied() != tt.wantApplied {
				t.Fatalf("SetKeywordName() applied = %v, want %v", res.IsApplied(), tt.wantApplied)
			}
			if got := s.Keywords()[i].Name; got != tt.wantName {
				t.Errorf("name = %q, want %q", got, tt.wantName)
			}
		})
	}
}

func TestSetKeywordName_ReplacesAliases(t *testing.T) {
	s := NewSession(nil, nil, nil)
	i := s.AddKeyword()

	if res := s.SetKeywordName(i, "cb"); !res.IsApplied() {
		t.Fatalf("SetKeywordName() rejected: %+v", res)
	}
	if res := s.AddAlias(i, "sumup"); !res.IsApplied() {
		t.Fatalf("AddAlias() rejected: %+v", res)
	}

	// Renaming discards the custom alias and installs the new defaults.
	if res := s.SetKeywordName(i, "esp"); !res.IsApplied() {
		t.Fatalf("rename rejected: %+v", res)
	}
	want := []string{"esp", "especes", "cash", "liquide"}
	if got := s.Keywords()[i].Aliases; !reflect.DeepEqual(got, want) {
		t.Errorf("aliases after rename = %v, want %v", got, want)
	}
}

func TestSetKeywordName_Conflicts(t *testing.T) {
	cfg := &model.ComptaConfig{
		Keywords: []model.Keyword{
			{Name: "CB", Column: "B", Aliases: []string{"cb", "carte"}},
			{Name: "ESP", Column: "C", Aliases: []string{"esp"}},
		},
	}

	t.Run("rejects another keyword's name", func(t *testing.T) {
		s := NewSession(cfg, nil, nil)
		res := s.SetKeywordName(1, "cb")
		if res.Outcome != Rejected || res.Conflict == nil {
			t.Fatalf("expected conflict rejection, got %+v", res)
		}
		if res.Conflict.Type != ConflictKeyword || res.Conflict.Name != "CB" {
			t.Errorf("conflict = %+v, want keyword CB", res.Conflict)
		}
		if got := s.Keywords()[1].Name; got != "ESP" {
			t.Errorf("rejected rename mutated the model: name = %q", got)
		}
	})

	t.Run("rejects another keyword's alias", func(t *testing.T) {
		s := NewSession(cfg, nil, nil)
		res := s.SetKeywordName(1, "carte")
		if res.Outcome != Rejected || res.Conflict == nil {
			t.Fatalf("expected conflict rejection, got %+v", res)
		}
		if res.Conflict.Type != ConflictAlias || res.Conflict.Name != "CB" {
			t.Errorf("conflict = %+v, want alias of CB", res.Conflict)
		}
	})

	t.Run("keeping its own name is not a conflict", func(t *testing.T) {
		s := NewSession(cfg, nil, nil)
		if res := s.SetKeywordName(0, "cb"); !res.IsApplied() {
			t.Errorf("renaming to own name rejected: %+v", res)
		}
	})
}

func TestAddAlias(t *testing.T) {
	newSession := func() *Session {
		return NewSession(&model.ComptaConfig{
			Keywords: []model.Keyword{
				{Name: "CB", Column: "B", Aliases: []string{"cb", "carte"}},
				{Name: "ESP", Column: "C", Aliases: []string{"esp"}},
			},
		}, nil, nil)
	}

	t.Run("trims and lower-cases", func(t *testing.T) {
		s := newSession()
		if res := s.AddAlias(0, "  Carte Bleue "); !res.IsApplied() {
			t.Fatalf("AddAlias() rejected: %+v", res)
		}
		aliases := s.Keywords()[0].Aliases
		if aliases[len(aliases)-1] != "carte bleue" {
			t.Errorf("stored alias = %q, want %q", aliases[len(aliases)-1], "carte bleue")
		}
	})

	t.Run("empty value is a silent no-op", func(t *testing.T) {
		s := newSession()
		res := s.AddAlias(0, "   ")
		if res.Outcome != Rejected || res.Conflict != nil || res.Reason != "" {
			t.Errorf("expected silent rejection, got %+v", res)
		}
	})

	t.Run("over-long value is a silent no-op", func(t *testing.T) {
		s := newSession()
		res := s.AddAlias(0, "un alias beaucoup trop long pour la table")
		if res.Outcome != Rejected || res.Conflict != nil {
			t.Errorf("expected silent rejection, got %+v", res)
		}
	})

	t.Run("own name is a silent no-op", func(t *testing.T) {
		s := newSession()
		res := s.AddAlias(0, "CB")
		if res.Outcome != Rejected || res.Conflict != nil {
			t.Errorf("expected silent rejection, got %+v", res)
		}
	})

	t.Run("duplicate of own alias conflicts", func(t *testing.T) {
		s := newSession()
		res := s.AddAlias(0, "carte")
		if res.Outcome != Rejected || res.Conflict == nil || res.Conflict.Type != ConflictAlias {
			t.Errorf("expected alias conflict, got %+v", res)
		}
	})

	t.Run("another keyword's alias conflicts", func(t *testing.T) {
		s := newSession()
		res := s.AddAlias(0, "esp")
		if res.Outcome != Rejected || res.Conflict == nil || res.Conflict.Name != "ESP" {
			t.Errorf("expected conflict with ESP, got %+v", res)
		}
	})
}

func TestDeleteAlias_UsesVisibleIndexes(t *testing.T) {
	// Legacy data: the first stored alias equals the keyword's own name
	// and is hidden from the user.
	s := NewSession(&model.ComptaConfig{
		Keywords: []model.Keyword{
			{Name: "CB", Column: "B", Aliases: []string{"cb", "carte", "visa"}},
		},
	}, nil, nil)

	if res := s.DeleteAlias(0, 0); !res.IsApplied() {
		t.Fatalf("DeleteAlias() rejected: %+v", res)
	}
	// Visible index 0 is "carte", not the hidden "cb".
	want := []string{"visa"}
	if got := s.Keywords()[0].Aliases; !reflect.DeepEqual(got, want) {
		t.Errorf("aliases = %v, want %v", got, want)
	}

	if res := s.DeleteAlias(0, 5); res.IsApplied() {
		t.Error("out-of-range alias index should be rejected")
	}
}

func TestDeleteKeyword(t *testing.T) {
	t.Run("unnamed keyword goes immediately", func(t *testing.T) {
		s := NewSession(nil, nil, nil)
		s.AddKeyword()
		res := s.DeleteKeyword(0)
		if !res.IsApplied() {
			t.Fatalf("expected immediate delete, got %+v", res)
		}
		if len(s.Keywords()) != 0 {
			t.Errorf("keyword not removed")
		}
	})

	t.Run("named keyword requires confirmation", func(t *testing.T) {
		s := NewSession(&model.ComptaConfig{
			Keywords: []model.Keyword{{Name: "CB", Column: "B", Aliases: []string{"cb"}}},
		}, nil, nil)

		res := s.DeleteKeyword(0)
		if res.Outcome != NeedsConfirmation || res.Confirmation == nil {
			t.Fatalf("expected confirmation, got %+v", res)
		}
		if res.Confirmation.Description != "CB" {
			t.Errorf("description = %q, want CB", res.Confirmation.Description)
		}
		if len(s.Keywords()) != 1 {
			t.Fatal("staged delete must not mutate the model")
		}

		if confirmed := s.Confirm(res.Confirmation); !confirmed.IsApplied() {
			t.Fatalf("Confirm() rejected: %+v", confirmed)
		}
		if len(s.Keywords()) != 0 {
			t.Error("confirmed delete did not remove the keyword")
		}
	})

	t.Run("cancel keeps the keyword", func(t *testing.T) {
		s := NewSession(&model.ComptaConfig{
			Keywords: []model.Keyword{{Name: "CB", Column: "B", Aliases: []string{"cb"}}},
		}, nil, nil)

		res := s.DeleteKeyword(0)
		s.Cancel(res.Confirmation)
		if len(s.Keywords()) != 1 {
			t.Error("cancelled delete removed the keyword")
		}
		// The token is dead after cancel.
		if confirmed := s.Confirm(res.Confirmation); confirmed.IsApplied() {
			t.Error("cancelled token must not confirm")
		}
	})

	t.Run("stale token is rejected", func(t *testing.T) {
		s := NewSession(&model.ComptaConfig{
			Keywords: []model.Keyword{
				{Name: "CB", Column: "B", Aliases: []string{"cb"}},
				{Name: "ESP", Column: "C", Aliases: []string{"esp"}},
			},
		}, nil, nil)

		first := s.DeleteKeyword(0)
		second := s.DeleteKeyword(1)
		if confirmed := s.Confirm(first.Confirmation); confirmed.IsApplied() {
			t.Error("superseded token must not confirm")
		}
		if confirmed := s.Confirm(second.Confirmation); !confirmed.IsApplied() {
			t.Errorf("latest token rejected: %+v", confirmed)
		}
	})
}

func TestSynthesizeTotal(t *testing.T) {
	t.Run("adds Total when the sheet has a total header", func(t *testing.T) {
		s := NewSession(&model.ComptaConfig{
			Keywords: []model.Keyword{{Name: "CB", Column: "B", Aliases: []string{"cb"}}},
		}, model.SheetHeaders{"E": "Total"}, nil)

		keywords := s.Keywords()
		if len(keywords) != 2 {
			t.Fatalf("expected synthesized Total, got %d keywords", len(keywords))
		}
		total := keywords[1]
		if total.Name != "Total" || total.Column != "E" {
			t.Errorf("synthesized keyword = %+v", total)
		}
	})

	t.Run("no duplicate when Total exists", func(t *testing.T) {
		s := NewSession(&model.ComptaConfig{
			Keywords: []model.Keyword{{Name: "TOTAL", Column: "E", Aliases: []string{"total"}}},
		}, model.SheetHeaders{"E": "Total"}, nil)

		if got := len(s.Keywords()); got != 1 {
			t.Errorf("expected 1 keyword, got %d", got)
		}
	})

	t.Run("nothing on an empty session", func(t *testing.T) {
		s := NewSession(&model.ComptaConfig{}, model.SheetHeaders{"E": "Total"}, nil)
		if got := len(s.Keywords()); got != 0 {
			t.Errorf("expected no keywords, got %d", got)
		}
	})
}

func TestRuleTargets(t *testing.T) {
	s := NewSession(&model.ComptaConfig{
		Keywords: []model.Keyword{
			{Name: "CB", Column: "B", Aliases: []string{"cb"}},
			{Name: "ESP", Column: "C", Aliases: []string{"esp"}},
		},
	}, nil, []string{"TOTAL", "CB"})

	want := []string{"CB", "ESP", "TOTAL"}
	if got := s.RuleTargets(); !reflect.DeepEqual(got, want) {
		t.Errorf("RuleTargets() = %v, want %v", got, want)
	}
}

func TestOnChange(t *testing.T) {
	s := NewSession(nil, nil, nil)
	var fired int
	s.OnChange(func() { fired++ })

	i := s.AddKeyword()
	s.SetKeywordName(i, "cb")
	s.SetKeywordName(i, "cb") // renaming to the same value still applies
	s.AddAlias(i, "")         // silent rejection must not fire

	if fired != 3 {
		t.Errorf("onChange fired %d times, want 3", fired)
	}
}
