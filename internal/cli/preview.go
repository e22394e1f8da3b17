package cli

import (
	"fmt"
	"strings"

	"github.com/iarmy/compta/internal/compta"
)

// RenderPreview renders the full synthetic preview: the chat bubble,
// the one-row spreadsheet table and the rule formulas.
func RenderPreview(p compta.Preview) string {
	if p.ChatLine == "" {
		return SubtleStyle.Render("Configure your keywords to see a preview")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Telegram"))
	b.WriteString("\n")
	b.WriteString(BubbleStyle.Render(p.ChatLine))
	b.WriteString("\n\n")
	b.WriteString(TitleStyle.Render("Sheet " + ChartIcon))
	b.WriteString("\n")
	b.WriteString(renderSheetRow(p.Cells))
	if len(p.Rules) > 0 {
		b.WriteString("\n\n")
		b.WriteString(TitleStyle.Render("Rules"))
		b.WriteString("\n")
		b.WriteString(RenderRules(p.Rules))
	}
	return b.String()
}

// renderSheetRow lays out the column letters and their example values as
// a two-line mini spreadsheet.
func renderSheetRow(cells []compta.Cell) string {
	if len(cells) == 0 {
		return ""
	}

	headers := make([]string, len(cells))
	values := make([]string, len(cells))
	for i, c := range cells {
		width := len(c.Value)
		if len(c.Column) > width {
			width = len(c.Column)
		}
		headers[i] = TableHeaderStyle.Render(pad(c.Column, width))
		if c.Calculated {
			values[i] = CalculatedStyle.Render(pad(c.Value, width))
		} else {
			values[i] = pad(c.Value, width)
		}
	}
	return strings.Join(headers, "  ") + "\n" + strings.Join(values, "  ")
}

// RenderRules renders each valid rule as "TARGET = A + B → result",
// joined on one line. Rules without a computed result show "?".
func RenderRules(rules []compta.RulePreview) string {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		result := "?"
		if r.HasResult {
			result = fmt.Sprintf("%g", r.Result)
		}
		parts = append(parts, fmt.Sprintf("%s = %s → %s",
			TitleStyle.Render(r.Target), r.Formula, SuccessStyle.Render(result)))
	}
	return strings.Join(parts, " · ")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
