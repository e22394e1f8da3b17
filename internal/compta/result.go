// Package compta implements the keyword and calculation-rule configuration
// model for the compta module: legacy-format normalization, conflict
// detection, default alias inference, the preview evaluator and the
// debounced autosave state machine.
package compta

// ConflictType distinguishes whether a value collides with a keyword's
// name or with one of its aliases.
type ConflictType string

// Conflict types.
const (
	ConflictKeyword ConflictType = "keyword"
	ConflictAlias   ConflictType = "alias"
)

// Conflict identifies the keyword that already uses a candidate value.
type Conflict struct {
	Type ConflictType
	// Name is the owning keyword's display name.
	Name string
	// Alias is the colliding alias when Type is ConflictAlias.
	Alias string
}

// Outcome is the result tag of a mutation.
type Outcome int

// Mutation outcomes.
const (
	// Applied means the mutation committed and the model changed.
	Applied Outcome = iota
	// Rejected means the model is unchanged. Conflict and Reason carry
	// user feedback; both empty means a silent rejection.
	Rejected
	// NeedsConfirmation means the mutation is staged and requires a
	// Confirm or Cancel call with the returned token.
	NeedsConfirmation
)

// ConfirmationKind identifies the staged destructive operation.
type ConfirmationKind int

// Confirmation kinds.
const (
	ConfirmDeleteKeyword ConfirmationKind = iota
	ConfirmDeleteRule
)

// Confirmation is the token returned for destructive mutations on
// non-empty entries. Pass it back to Session.Confirm or Session.Cancel.
// Only the most recently issued token is valid.
type Confirmation struct {
	Description string
	Index       int
	Kind        ConfirmationKind
	seq         uint64
}

// MutationResult is the tagged outcome of every session mutation.
type MutationResult struct {
	Confirmation *Confirmation
	Conflict     *Conflict
	Reason       string
	Outcome      Outcome
}

// IsApplied reports whether the mutation committed.
func (r MutationResult) IsApplied() bool {
	return r.Outcome == Applied
}

func applied() MutationResult {
	return MutationResult{Outcome: Applied}
}

func rejected(reason string) MutationResult {
	return MutationResult{Outcome: Rejected, Reason: reason}
}

func rejectedConflict(c *Conflict) MutationResult {
	return MutationResult{Outcome: Rejected, Conflict: c}
}
