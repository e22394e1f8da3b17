package compta

import (
	"strconv"
	"strings"

	"github.com/iarmy/compta/internal/model"
)

// exampleValues is the fixed descending sequence assigned to active
// keywords in list order. Keywords beyond the sequence get the flat
// fallback. Previews never use real data.
var exampleValues = []float64{200, 150, 100, 80, 60, 50}

const exampleFallback = 50

// Cell is one column of the synthetic spreadsheet-row preview.
type Cell struct {
	Column     string
	Name       string
	Value      string
	Calculated bool
}

// RulePreview is a valid rule rendered with its computed example result.
type RulePreview struct {
	Target  string
	Formula string
	Result  float64
	// HasResult is false when the rule produced no value (unknown terms
	// or an exact-zero result, which is suppressed).
	HasResult bool
}

// Preview is the synthetic feedback computed from the current model:
// a chat-message line, a one-row spreadsheet table and the rule formulas
// with their example results.
type Preview struct {
	Results  map[string]float64
	ChatLine string
	Cells    []Cell
	Rules    []RulePreview
}

// Preview evaluates the session against the fixed example values.
//
// Rules run in list order, not dependency order: a rule referencing
// another rule's target only sees its value when that rule appears
// earlier in the list. Results write back into the shared value map and
// override keywords of the same name. Exact-zero results are treated as
// absent.
func (s *Session) Preview() Preview {
	var active []model.Keyword
	for _, k := range s.keywords {
		if k.IsActive() {
			active = append(active, k)
		}
	}

	p := Preview{Results: make(map[string]float64)}
	if len(active) == 0 {
		return p
	}

	values := make(map[string]float64, len(active))
	for i, k := range active {
		values[k.Name] = exampleValue(i)
	}

	var targets []string
	for _, r := range s.rules {
		if !r.IsValid() {
			continue
		}
		var result float64
		for _, t := range r.Terms {
			v, known := values[t.Name]
			if t.Name == "" || !known {
				continue
			}
			if t.Op == model.OpSubtract {
				result -= v
			} else {
				result += v
			}
		}
		if result != 0 {
			if _, seen := p.Results[r.Target]; !seen {
				targets = append(targets, r.Target)
			}
			p.Results[r.Target] = result
			values[r.Target] = result
		}
	}

	// Chat bubble: the first three active keywords, lower-cased.
	var parts []string
	for i, k := range active {
		if i >= 3 {
			break
		}
		parts = append(parts, strings.ToLower(k.Name)+" "+formatValue(exampleValue(i)))
	}
	p.ChatLine = strings.Join(parts, " ")

	// Sheet row: active keywords plus any computed target that maps to a
	// real column and is not already shown.
	columns := append([]model.Keyword(nil), active...)
	for _, target := range targets {
		if containsName(columns, target) {
			continue
		}
		for _, k := range s.keywords {
			if k.Name == target && k.Column != "" {
				columns = append(columns, k)
				break
			}
		}
	}
	for _, k := range columns {
		_, calculated := p.Results[k.Name]
		value := "-"
		if v, ok := values[k.Name]; ok {
			value = formatValue(v)
		}
		p.Cells = append(p.Cells, Cell{
			Column:     k.Column,
			Name:       k.Name,
			Value:      value,
			Calculated: calculated,
		})
	}

	for _, r := range s.rules {
		if !r.IsValid() {
			continue
		}
		var formula strings.Builder
		for i, t := range r.NamedTerms() {
			if i > 0 {
				formula.WriteString(" " + string(t.Op) + " ")
			}
			formula.WriteString(t.Name)
		}
		result, ok := p.Results[r.Target]
		p.Rules = append(p.Rules, RulePreview{
			Target:    r.Target,
			Formula:   formula.String(),
			Result:    result,
			HasResult: ok,
		})
	}

	return p
}

func exampleValue(i int) float64 {
	if i < len(exampleValues) {
		return exampleValues[i]
	}
	return exampleFallback
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func containsName(keywords []model.Keyword, name string) bool {
	for _, k := range keywords {
		if k.Name == name {
			return true
		}
	}
	return false
}
