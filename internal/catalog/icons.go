package catalog

// IconTemplate identifies the animated icon pair rendered on a module
// card. The rendering layer owns the actual markup; the catalog only
// records which template a module uses and what it depicts.
type IconTemplate struct {
	ID          string
	Description string
}

// IconTemplates lists the known icon templates. Unknown template ids
// fall back to "custom".
func IconTemplates() []IconTemplate {
	return []IconTemplate{
		{ID: "telegram_sheets", Description: "Telegram chat feeding a spreadsheet"},
		{ID: "bottles_count", Description: "Bottle inventory with a counter"},
		{ID: "people_pdf", Description: "Team roster with a payroll euro"},
		{ID: "calendar", Description: "Weekly schedule calendar"},
		{ID: "reservation", Description: "Booking confirmation checkmark"},
		{ID: "star", Description: "Loyalty star"},
		{ID: "custom", Description: "Generic module grid"},
	}
}

// IconTemplateByID resolves a template id, falling back to the generic
// template for unknown ids.
func IconTemplateByID(id string) IconTemplate {
	templates := IconTemplates()
	for _, t := range templates {
		if t.ID == id {
			return t
		}
	}
	return templates[len(templates)-1]
}
