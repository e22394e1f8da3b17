// Package catalog holds the static product catalog: the modules small
// businesses can subscribe to, their categories and icon templates.
// Adding a module here makes it appear everywhere modules are listed.
package catalog

import (
	"time"

	"github.com/iarmy/compta/internal/model"
)

// Categories returns the business categories modules are filtered by.
func Categories() []model.ModuleCategory {
	return []model.ModuleCategory{
		{ID: "all", Name: "Tous", Icon: "⚡"},
		{ID: "restaurant", Name: "Restaurant", Icon: "🍽️"},
		{ID: "bar", Name: "Bar", Icon: "🍸"},
	}
}

// Modules returns the full module catalog.
func Modules() []model.Module {
	return []model.Module{
		{
			ID:           "compta",
			Name:         "Compta",
			Description:  "Enregistre ta caisse via Telegram, synchronise avec Google Sheets",
			Icon:         "📊",
			IconTemplate: "telegram_sheets",
			Color:        "#22c55e",
			ColorLight:   "rgba(34,197,94,0.15)",
			Price:        "9.99",
			PriceUnit:    "€/mois",
			Categories:   []string{"restaurant", "bar"},
			Features: []string{
				"Saisie vocale ou texte via Telegram",
				"Synchronisation Google Sheets automatique",
				"Export PDF mensuel",
				"Notifications et rappels",
			},
			SetupURL:    "/compta/setup/",
			SettingsURL: "/?soldat=compta",
			Status:      model.ModuleAvailable,
		},
		{
			ID:           "stock",
			Name:         "Stock",
			Description:  "Gere ton inventaire et recois des alertes de reapprovisionnement",
			Icon:         "📦",
			IconTemplate: "bottles_count",
			Color:        "#06b6d4",
			ColorLight:   "rgba(6,182,212,0.15)",
			Price:        "9.99",
			PriceUnit:    "€/mois",
			Categories:   []string{"restaurant", "bar"},
			Features: []string{
				"Inventaire en temps reel",
				"Alertes stock bas",
				"Scan code-barres",
				"Historique des mouvements",
			},
			SetupURL:    "/stock/setup/",
			SettingsURL: "/?soldat=stock",
			Status:      model.ModuleAvailable,
		},
		{
			ID:           "paie",
			Name:         "Paie",
			Description:  "Calcule les salaires et genere les fiches de paie automatiquement",
			Icon:         "💰",
			IconTemplate: "people_pdf",
			Color:        "#f59e0b",
			ColorLight:   "rgba(245,158,11,0.15)",
			Price:        "14.99",
			PriceUnit:    "€/mois",
			Categories:   []string{"restaurant", "bar"},
			Features: []string{
				"Calcul automatique des salaires",
				"Generation fiches de paie PDF",
				"Gestion des conges et absences",
				"Declaration URSSAF simplifiee",
			},
			SetupURL:    "/setup/?module=paie",
			SettingsURL: "/?soldat=paie",
			Status:      model.ModuleAvailable,
		},
		{
			ID:           "planning",
			Name:         "Planning",
			Description:  "Planifie les horaires de ton equipe et gere les rotations",
			Icon:         "📅",
			IconTemplate: "calendar",
			Color:        "#8b5cf6",
			ColorLight:   "rgba(139,92,246,0.15)",
			Price:        "9.99",
			PriceUnit:    "€/mois",
			Categories:   []string{"restaurant", "bar"},
			Features: []string{
				"Planning hebdomadaire drag & drop",
				"Notifications aux employes",
				"Gestion des echanges de shifts",
				"Vue calendrier mensuelle",
			},
			SetupURL:    "/planning/setup/",
			SettingsURL: "/?soldat=planning",
			Status:      model.ModuleComingSoon,
		},
		{
			ID:           "reservations",
			Name:         "Reservations",
			Description:  "Gere les reservations de ton restaurant en ligne",
			Icon:         "🍽️",
			IconTemplate: "reservation",
			Color:        "#ec4899",
			ColorLight:   "rgba(236,72,153,0.15)",
			Price:        "19.99",
			PriceUnit:    "€/mois",
			Categories:   []string{"restaurant"},
			Features: []string{
				"Widget de reservation pour ton site",
				"Confirmation automatique par SMS",
				"Gestion des tables et capacite",
				"Rappels clients automatiques",
			},
			SetupURL:    "/reservations/setup/",
			SettingsURL: "/?soldat=reservations",
			Status:      model.ModuleComingSoon,
		},
		{
			ID:           "fidelite",
			Name:         "Fidelite",
			Description:  "Programme de fidelite digital pour tes clients",
			Icon:         "⭐",
			IconTemplate: "star",
			Color:        "#eab308",
			ColorLight:   "rgba(234,179,8,0.15)",
			Price:        "14.99",
			PriceUnit:    "€/mois",
			Categories:   []string{"restaurant", "bar"},
			Features: []string{
				"Carte de fidelite digitale",
				"Points et recompenses",
				"Campagnes SMS/Email",
				"Statistiques clients",
			},
			SetupURL:    "/fidelite/setup/",
			SettingsURL: "/?soldat=fidelite",
			Status:      model.ModuleComingSoon,
		},
	}
}

// ByCategory filters the catalog. Category "all" or "" returns
// everything.
func ByCategory(modules []model.Module, category string) []model.Module {
	if category == "" || category == "all" {
		return modules
	}
	var out []model.Module
	for _, m := range modules {
		for _, c := range m.Categories {
			if c == category {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// newModuleWindow is how long a module keeps its automatic "new" badge.
const newModuleWindow = 14 * 24 * time.Hour

// Badge resolves the badge to show for a module. An explicit "none"
// hides any badge; an unset badge falls back to "new" for recently
// created modules.
func Badge(m model.Module, now time.Time) model.ModuleBadge {
	switch m.Badge {
	case model.BadgeNone:
		return model.BadgeNone
	case model.BadgeNew, model.BadgePopular, model.BadgePromo:
		return m.Badge
	}
	if !m.CreatedAt.IsZero() && now.Sub(m.CreatedAt) < newModuleWindow {
		return model.BadgeNew
	}
	return model.BadgeNone
}
