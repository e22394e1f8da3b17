package export

import "github.com/iarmy/compta/internal/model"

// Column is one selectable column of the accountant export.
type Column struct {
	ID       string
	Name     string
	Selected bool
}

// calculated columns always offered alongside the keyword columns.
var calculatedColumns = []string{"TOTAL", "TVA"}

// Columns lists the exportable columns for the current configuration:
// the Date column, one per active keyword, and the calculated totals.
// Selection comes from the saved export settings; with no saved
// selection everything is checked.
func Columns(keywords []model.Keyword, settings *model.ExportSettings) []Column {
	var saved []string
	if settings != nil {
		saved = settings.ExportColumns
	}
	selected := func(name string) bool {
		if saved == nil {
			return true
		}
		for _, s := range saved {
			if s == name {
				return true
			}
		}
		return false
	}

	columns := []Column{{ID: "date", Name: "Date", Selected: true}}
	for _, k := range keywords {
		if !k.IsActive() {
			continue
		}
		columns = append(columns, Column{
			ID:       k.Name,
			Name:     k.Name,
			Selected: selected(k.Name),
		})
	}
	for _, name := range calculatedColumns {
		columns = append(columns, Column{ID: name, Name: name, Selected: selected(name)})
	}
	return columns
}
