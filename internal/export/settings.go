package export

import (
	"regexp"

	"github.com/iarmy/compta/internal/common"
	"github.com/iarmy/compta/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether an accountant email address looks sendable.
// Empty is accepted (settings not filled in yet).
func ValidEmail(email string) bool {
	return email == "" || emailPattern.MatchString(email)
}

// ValidateSettings checks export settings before the auto export can be
// enabled: a valid, non-empty recipient is required.
func ValidateSettings(s *model.ExportSettings) error {
	if s == nil || !s.AutoExportEnabled {
		return nil
	}
	if s.ExportEmail == "" {
		return common.NewUserError("enter the accountant's email", common.ErrMissingConfig)
	}
	if !emailPattern.MatchString(s.ExportEmail) {
		return common.NewUserError("invalid email address", common.ErrInvalidConfig)
	}
	return nil
}
