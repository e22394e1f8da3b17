package catalog

import (
	"testing"
	"time"

	"github.com/iarmy/compta/internal/model"
)

func TestModules_CatalogIntegrity(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Modules() {
		if m.ID == "" || m.Name == "" {
			t.Errorf("module missing identity: %+v", m)
		}
		if seen[m.ID] {
			t.Errorf("duplicate module id %q", m.ID)
		}
		seen[m.ID] = true
		if len(m.Categories) == 0 {
			t.Errorf("module %q has no categories", m.ID)
		}
	}
	if !seen["compta"] {
		t.Error("compta module missing from the catalog")
	}
}

func TestByCategory(t *testing.T) {
	modules := Modules()

	if got := ByCategory(modules, "all"); len(got) != len(modules) {
		t.Errorf("all filter dropped modules: %d vs %d", len(got), len(modules))
	}
	if got := ByCategory(modules, ""); len(got) != len(modules) {
		t.Errorf("empty filter dropped modules: %d vs %d", len(got), len(modules))
	}

	for _, m := range ByCategory(modules, "bar") {
		found := false
		for _, c := range m.Categories {
			if c == "bar" {
				found = true
			}
		}
		if !found {
			t.Errorf("module %q leaked into the bar category", m.ID)
		}
	}
}

func TestBadge(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		module model.Module
		want   model.ModuleBadge
	}{
		{
			name:   "explicit none wins",
			module: model.Module{Badge: model.BadgeNone, CreatedAt: now.Add(-time.Hour)},
			want:   model.BadgeNone,
		},
		{
			name:   "explicit badge passes through",
			module: model.Module{Badge: model.BadgePopular},
			want:   model.BadgePopular,
		},
		{
			name:   "recent module earns the new badge",
			module: model.Module{CreatedAt: now.Add(-10 * 24 * time.Hour)},
			want:   model.BadgeNew,
		},
		{
			name:   "two-week-old module loses it",
			module: model.Module{CreatedAt: now.Add(-15 * 24 * time.Hour)},
			want:   model.BadgeNone,
		},
		{
			name:   "no creation date means no badge",
			module: model.Module{},
			want:   model.BadgeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Badge(tt.module, now); got != tt.want {
				t.Errorf("Badge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIconTemplateByID(t *testing.T) {
	if got := IconTemplateByID("telegram_sheets"); got.ID != "telegram_sheets" {
		t.Errorf("known template = %+v", got)
	}
	if got := IconTemplateByID("does-not-exist"); got.ID != "custom" {
		t.Errorf("unknown id should fall back to custom, got %+v", got)
	}
}
