package compta

import (
	"strings"

	"github.com/iarmy/compta/internal/model"
)

// Session owns the keyword and rule collections for one configuration
// editing screen. It is seeded once from the persisted config and mutated
// through typed operations, each of which re-validates before committing.
// Sessions are not safe for concurrent use; the caller is the single
// mutator.
type Session struct {
	onChange      func()
	pending       *Confirmation
	exportCfg     *model.ExportSettings
	notifications *model.NotificationSettings
	headers       model.SheetHeaders
	keywords      []model.Keyword
	rules         []model.Rule
	protected     []string
	seq           uint64
}

// NewSession builds a session from a persisted config blob. A nil config
// yields an empty session; malformed rule entries are normalized to inert
// placeholders, never errors.
func NewSession(cfg *model.ComptaConfig, headers model.SheetHeaders, protected []string) *Session {
	s := &Session{
		headers:   headers,
		protected: protected,
	}
	if headers == nil {
		s.headers = model.SheetHeaders{}
	}
	if cfg == nil {
		return s
	}

	s.keywords = make([]model.Keyword, 0, len(cfg.Keywords)+1)
	for _, k := range cfg.Keywords {
		s.keywords = append(s.keywords, model.Keyword{
			Name:       k.Name,
			Column:     k.Column,
			NoteColumn: k.NoteColumn,
			Aliases:    append([]string(nil), k.Aliases...),
		})
	}
	s.rules = normalizeRules(cfg.Rules)
	s.exportCfg = cfg.ExportSettings
	s.notifications = cfg.NotificationSettings
	s.synthesizeTotal()
	return s
}

// ExportSettings returns a copy of the stored export settings, zero when
// none are saved yet.
func (s *Session) ExportSettings() model.ExportSettings {
	if s.exportCfg == nil {
		return model.ExportSettings{}
	}
	return *s.exportCfg
}

// SetExportSettings replaces the export settings.
func (s *Session) SetExportSettings(settings model.ExportSettings) {
	s.exportCfg = &settings
	s.markDirty()
}

// NotificationSettings returns a copy of the stored notification
// settings, zero when none are saved yet.
func (s *Session) NotificationSettings() model.NotificationSettings {
	if s.notifications == nil {
		return model.NotificationSettings{}
	}
	return *s.notifications
}

// SetNotificationSettings replaces the notification settings.
func (s *Session) SetNotificationSettings(settings model.NotificationSettings) {
	s.notifications = &settings
	s.markDirty()
}

// synthesizeTotal appends a Total keyword when the sheet already has a
// "total" header but no keyword claims it.
func (s *Session) synthesizeTotal() {
	if len(s.keywords) == 0 {
		return
	}
	for _, k := range s.keywords {
		if strings.EqualFold(k.Name, "total") {
			return
		}
	}
	for _, col := range model.Columns {
		if strings.EqualFold(s.headers[col], "total") {
			s.keywords = append(s.keywords, model.Keyword{
				Name:    "Total",
				Column:  col,
				Aliases: []string{"total"},
			})
			return
		}
	}
}

// OnChange registers a callback invoked after every applied mutation.
// The autosave layer uses it to mark the model dirty.
func (s *Session) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Session) markDirty() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Keywords returns the current keyword list. The slice is a copy; mutate
// through the typed operations.
func (s *Session) Keywords() []model.Keyword {
	out := make([]model.Keyword, len(s.keywords))
	copy(out, s.keywords)
	return out
}

// Rules returns the current rule list as a copy.
func (s *Session) Rules() []model.Rule {
	out := make([]model.Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Headers returns the sheet header reference data.
func (s *Session) Headers() model.SheetHeaders {
	return s.headers
}

// RuleTargets returns every name a rule may write to: keyword names in
// list order followed by protected columns, deduplicated.
func (s *Session) RuleTargets() []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range s.keywords {
		if k.Name != "" && !seen[k.Name] {
			seen[k.Name] = true
			out = append(out, k.Name)
		}
	}
	for _, p := range s.protected {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// AddKeyword appends an empty keyword with an auto-selected column: the
// first free letter after A that no keyword uses and no sheet header
// already labels. Returns the new keyword's index.
func (s *Session) AddKeyword() int {
	used := make(map[string]bool)
	for _, k := range s.keywords {
		if k.Column != "" {
			used[k.Column] = true
		}
	}
	var next string
	for _, col := range model.Columns {
		if col == "A" || used[col] {
			continue
		}
		if _, taken := s.headers[col]; taken {
			continue
		}
		next = col
		break
	}
	s.keywords = append(s.keywords, model.Keyword{Column: next, Aliases: []string{}})
	s.markDirty()
	return len(s.keywords) - 1
}

// SetKeywordName renames a keyword. The value is upper-cased and clipped
// to 20 characters, then checked against every other keyword's name and
// aliases. On success the alias set is replaced by the default aliases
// inferred from the new name, discarding any custom ones.
func (s *Session) SetKeywordName(i int, name string) MutationResult {
	if i < 0 || i >= len(s.keywords) {
		return rejected("no such keyword")
	}
	name = strings.ToUpper(truncate(name, model.MaxNameLength))
	if c := s.CheckConflict(name, i); c != nil {
		return rejectedConflict(c)
	}
	s.keywords[i].Name = name
	s.keywords[i].Aliases = DefaultAliases(name)
	s.markDirty()
	return applied()
}

// SetKeywordColumn assigns the spreadsheet column. Duplicate columns
// across keywords are allowed; the display layer may flag them.
func (s *Session) SetKeywordColumn(i int, column string) MutationResult {
	if i < 0 || i >= len(s.keywords) {
		return rejected("no such keyword")
	}
	s.keywords[i].Column = column
	s.markDirty()
	return applied()
}

// SetKeywordNoteColumn assigns the secondary free-text note column.
func (s *Session) SetKeywordNoteColumn(i int, column string) MutationResult {
	if i < 0 || i >= len(s.keywords) {
		return rejected("no such keyword")
	}
	s.keywords[i].NoteColumn = column
	s.markDirty()
	return applied()
}

// DeleteKeyword removes a keyword. Unnamed keywords are removed
// immediately; named ones require confirmation via the returned token.
func (s *Session) DeleteKeyword(i int) MutationResult {
	if i < 0 || i >= len(s.keywords) {
		return rejected("no such keyword")
	}
	if strings.TrimSpace(s.keywords[i].Name) == "" {
		s.keywords = append(s.keywords[:i], s.keywords[i+1:]...)
		s.markDirty()
		return applied()
	}
	return s.stageConfirmation(ConfirmDeleteKeyword, i, s.keywords[i].Name)
}

// AddAlias attaches an alias to a keyword. Input is trimmed and
// lower-cased. Empty, over-long or self-referential values are ignored
// silently; duplicates and cross-keyword collisions return a conflict.
func (s *Session) AddAlias(i int, raw string) MutationResult {
	if i < 0 || i >= len(s.keywords) {
		return rejected("no such keyword")
	}
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" || len([]rune(value)) > model.MaxNameLength {
		return rejected("")
	}
	kw := &s.keywords[i]
	if value == strings.ToLower(kw.Name) {
		return rejected("")
	}
	for _, a := range kw.Aliases {
		if strings.ToLower(a) == value {
			return rejectedConflict(&Conflict{Type: ConflictAlias, Name: kw.Name, Alias: value})
		}
	}
	if c := s.CheckConflict(value, i); c != nil {
		return rejectedConflict(c)
	}
	kw.Aliases = append(kw.Aliases, value)
	s.markDirty()
	return applied()
}

// DeleteAlias removes an alias by its position in the visible alias list
// (aliases equal to the keyword's own name are hidden and dropped).
func (s *Session) DeleteAlias(i, aliasIndex int) MutationResult {
	if i < 0 || i >= len(s.keywords) {
		return rejected("no such keyword")
	}
	kw := &s.keywords[i]
	visible := kw.VisibleAliases()
	if aliasIndex < 0 || aliasIndex >= len(visible) {
		return rejected("no such alias")
	}
	kw.Aliases = append(visible[:aliasIndex], visible[aliasIndex+1:]...)
	s.markDirty()
	return applied()
}

// CheckConflict returns the first keyword other than the excluded index
// whose name or alias equals the candidate, case-insensitively. It is
// the single source of truth for uniqueness across names and aliases.
func (s *Session) CheckConflict(value string, exclude int) *Conflict {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return nil
	}
	for j, kw := range s.keywords {
		if j == exclude {
			continue
		}
		if kw.Name != "" && strings.ToLower(kw.Name) == normalized {
			return &Conflict{Type: ConflictKeyword, Name: kw.Name}
		}
		for _, alias := range kw.Aliases {
			if strings.ToLower(alias) == normalized {
				return &Conflict{Type: ConflictAlias, Name: kw.Name, Alias: alias}
			}
		}
	}
	return nil
}

// Confirm applies the staged destructive mutation for the given token.
// Stale or foreign tokens are rejected.
func (s *Session) Confirm(c *Confirmation) MutationResult {
	if c == nil || s.pending == nil || c.seq != s.pending.seq {
		return rejected("stale confirmation")
	}
	s.pending = nil
	switch c.Kind {
	case ConfirmDeleteKeyword:
		if c.Index < 0 || c.Index >= len(s.keywords) {
			return rejected("no such keyword")
		}
		s.keywords = append(s.keywords[:c.Index], s.keywords[c.Index+1:]...)
	case ConfirmDeleteRule:
		if c.Index < 0 || c.Index >= len(s.rules) {
			return rejected("no such rule")
		}
		s.rules = append(s.rules[:c.Index], s.rules[c.Index+1:]...)
	}
	s.markDirty()
	return applied()
}

// Cancel discards a staged confirmation. Unknown tokens are ignored.
func (s *Session) Cancel(c *Confirmation) {
	if c != nil && s.pending != nil && c.seq == s.pending.seq {
		s.pending = nil
	}
}

func (s *Session) stageConfirmation(kind ConfirmationKind, index int, description string) MutationResult {
	s.seq++
	s.pending = &Confirmation{
		Kind:        kind,
		Index:       index,
		Description: description,
		seq:         s.seq,
	}
	return MutationResult{Outcome: NeedsConfirmation, Confirmation: s.pending}
}

// truncate clips a string to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
