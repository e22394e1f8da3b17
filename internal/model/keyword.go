// Package model defines the core data structures for the compta application.
package model

import "strings"

// Columns lists every spreadsheet column a keyword can map to, in order.
var Columns = strings.Split("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "")

// MaxNameLength is the upper bound on keyword names and aliases.
const MaxNameLength = 20

// Keyword maps a chat-reported category to a spreadsheet column.
// Name is stored upper-cased; aliases are stored lower-cased.
type Keyword struct {
	Name       string   `json:"nom"`
	Column     string   `json:"colonne,omitempty"`
	NoteColumn string   `json:"noteColumn,omitempty"`
	Aliases    []string `json:"aliases"`
}

// IsActive reports whether the keyword participates in matching and
// previews: it needs both a name and an assigned column.
func (k Keyword) IsActive() bool {
	return k.Name != "" && k.Column != ""
}

// VisibleAliases returns the aliases shown to the user. Legacy data can
// contain an alias equal to the keyword's own name; those are hidden.
func (k Keyword) VisibleAliases() []string {
	out := make([]string, 0, len(k.Aliases))
	for _, a := range k.Aliases {
		if a == "" || strings.EqualFold(a, k.Name) {
			continue
		}
		out = append(out, a)
	}
	return out
}
