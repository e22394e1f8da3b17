package compta

import (
	"reflect"
	"testing"
)

func TestDefaultAliases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "card payments",
			input: "CB",
			want:  []string{"cb", "carte", "carte bancaire", "carte bleue", "visa", "mastercard"},
		},
		{
			name:  "long trigger maps to the same family",
			input: "Carte Bancaire",
			want:  []string{"carte bancaire", "cb", "carte", "carte bleue", "visa", "mastercard"},
		},
		{
			name:  "meal vouchers",
			input: "TR",
			want:  []string{"tr", "ticket", "tickets", "ticket resto", "ticket restaurant"},
		},
		{
			name:  "cash",
			input: "ESP",
			want:  []string{"esp", "especes", "cash", "liquide"},
		},
		{
			name:  "expenses",
			input: "DEP",
			want:  []string{"dep", "depense", "depenses", "frais"},
		},
		{
			name:  "register total",
			input: "RAZ",
			want:  []string{"raz", "caisse", "z", "recette"},
		},
		{
			name:  "total",
			input: "TOTAL",
			want:  []string{"total", "tot", "somme"},
		},
		{
			name:  "unknown name gets itself only",
			input: "Pourboires",
			want:  []string{"pourboires"},
		},
		{
			name:  "empty name has no aliases",
			input: "  ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultAliases(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DefaultAliases(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
