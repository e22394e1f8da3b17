package model

import "time"

// ModuleStatus indicates whether a module can be subscribed to.
type ModuleStatus string

// Module availability states.
const (
	ModuleAvailable  ModuleStatus = "available"
	ModuleComingSoon ModuleStatus = "coming_soon"
	ModuleBeta       ModuleStatus = "beta"
)

// ModuleBadge is the promotional badge shown on a module card.
type ModuleBadge string

// Module badge values. An empty badge means "auto": new modules get
// BadgeNew for their first two weeks.
const (
	BadgeNone    ModuleBadge = "none"
	BadgeNew     ModuleBadge = "nouveau"
	BadgePopular ModuleBadge = "populaire"
	BadgePromo   ModuleBadge = "promo"
)

// ModuleCategory groups modules by business type.
type ModuleCategory struct {
	ID   string
	Name string
	Icon string
}

// Module describes one entry of the product catalog.
type Module struct {
	CreatedAt    time.Time
	ID           string
	Name         string
	Description  string
	Icon         string
	IconTemplate string
	Color        string
	ColorLight   string
	Price        string
	PriceUnit    string
	SetupURL     string
	SettingsURL  string
	Status       ModuleStatus
	Badge        ModuleBadge
	Categories   []string
	Features     []string
}
