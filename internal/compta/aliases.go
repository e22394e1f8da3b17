package compta

import "strings"

// Canonical alias sets for the financial terms small businesses report
// through chat. Keys and members are lower-case French shorthand.
var defaultAliasTable = []struct {
	triggers []string
	aliases  []string
}{
	{
		triggers: []string{"cb", "carte bancaire"},
		aliases:  []string{"cb", "carte", "carte bancaire", "carte bleue", "visa", "mastercard"},
	},
	{
		triggers: []string{"tr", "ticket", "ticket resto"},
		aliases:  []string{"tr", "ticket", "tickets", "ticket resto", "ticket restaurant"},
	},
	{
		triggers: []string{"esp", "especes", "cash"},
		aliases:  []string{"esp", "especes", "cash", "liquide"},
	},
	{
		triggers: []string{"dep", "depenses"},
		aliases:  []string{"dep", "depense", "depenses", "frais"},
	},
	{
		triggers: []string{"raz", "caisse"},
		aliases:  []string{"raz", "caisse", "z", "recette"},
	},
	{
		triggers: []string{"total"},
		aliases:  []string{"total", "tot", "somme"},
	},
}

// DefaultAliases infers the alias set for a keyword name. Known financial
// terms get their canonical synonym list merged with the name itself;
// anything else gets just the lower-cased name. The table is fixed, not
// user-extensible.
func DefaultAliases(name string) []string {
	n := strings.TrimSpace(strings.ToLower(name))
	if n == "" {
		return nil
	}
	for _, entry := range defaultAliasTable {
		for _, trigger := range entry.triggers {
			if n == trigger {
				return dedupe(append([]string{n}, entry.aliases...))
			}
		}
	}
	return []string{n}
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
