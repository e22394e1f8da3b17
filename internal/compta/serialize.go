package compta

import (
	"strings"

	"github.com/iarmy/compta/internal/model"
)

// Serialize produces the persistable representation of the session:
// keywords with non-empty names (alias list defaulted to the lower-cased
// name when empty) and rules carrying a target plus at least one named
// term. Drafts that fail those criteria are dropped, not stored.
func (s *Session) Serialize() model.ComptaConfig {
	cfg := model.ComptaConfig{
		Keywords:             []model.Keyword{},
		Rules:                []model.RawRule{},
		ExportSettings:       s.exportCfg,
		NotificationSettings: s.notifications,
	}

	for _, k := range s.keywords {
		if strings.TrimSpace(k.Name) == "" {
			continue
		}
		aliases := append([]string(nil), k.Aliases...)
		if len(aliases) == 0 {
			aliases = []string{strings.ToLower(k.Name)}
		}
		cfg.Keywords = append(cfg.Keywords, model.Keyword{
			Name:       k.Name,
			Column:     k.Column,
			NoteColumn: k.NoteColumn,
			Aliases:    aliases,
		})
	}

	for _, r := range s.rules {
		if !r.IsValid() {
			continue
		}
		cfg.Rules = append(cfg.Rules, model.RawRule{
			Terms:  r.NamedTerms(),
			Target: r.Target,
		})
	}

	return cfg
}
