package stores

import (
	"fmt"
	"strings"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

// ChangeForm is the permission-request form state: a general reason plus a
// list of per-field change entries diffed against the live profile. Field
// names are unique across entries; the field picker excludes already-chosen
// fields, and UpdateField enforces the same rule server-side of the UI.
type ChangeForm struct {
	GeneralReason string                 `json:"generalReason"`
	Changes       []models.ChangeRequest `json:"changes"`

	// Locked flips after a successful submission; the screen renders the
	// request summary read-only until an admin decides.
	Locked bool `json:"locked"`
}

// ChangePatch is a partial update to one change entry. Nil fields are left
// untouched.
type ChangePatch struct {
	FieldName *string
	NewValue  *string
	Reason    *string
}

// AddField appends an empty entry for the picker to fill in.
func (f *ChangeForm) AddField() {
	f.Changes = append(f.Changes, models.ChangeRequest{})
}

// RemoveField deletes entry i. Out-of-range indexes are ignored.
func (f *ChangeForm) RemoveField(i int) {
	if i < 0 || i >= len(f.Changes) {
		return
	}
	f.Changes = append(f.Changes[:i], f.Changes[i+1:]...)
}

// UpdateField merges a partial update into entry i. Whenever the field name
// changes, the current value is re-read from the live profile and the display
// name from the field table, so entries can never drift from the snapshot
// they diff against.
func (f *ChangeForm) UpdateField(i int, patch ChangePatch, profile *models.StudentProfile) error {
	if i < 0 || i >= len(f.Changes) {
		return apperrors.NewValidationError("no such change entry")
	}
	entry := &f.Changes[i]

	if patch.FieldName != nil && *patch.FieldName != entry.FieldName {
		name := *patch.FieldName
		for j := range f.Changes {
			if j != i && f.Changes[j].FieldName == name {
				return apperrors.ErrDuplicateChangeField
			}
		}
		field, ok := models.LookupProfileField(name)
		if !ok {
			return apperrors.ErrUnknownProfileField
		}
		entry.FieldName = name
		entry.FieldDisplayName = field.Label
		entry.CurrentValue = ""
		if profile != nil {
			entry.CurrentValue = field.Value(profile)
		}
	}
	if patch.NewValue != nil {
		entry.NewValue = *patch.NewValue
	}
	if patch.Reason != nil {
		entry.Reason = *patch.Reason
	}
	return nil
}

// validEntries returns the entries that name a field. Blank rows the user
// added but never filled are skipped, not errors.
func (f *ChangeForm) validEntries() []models.ChangeRequest {
	var out []models.ChangeRequest
	for _, c := range f.Changes {
		if c.FieldName != "" {
			out = append(out, c)
		}
	}
	return out
}

// Validate enforces the submission rules: something must be requested, and
// every named field needs both a new value and a reason.
func (f *ChangeForm) Validate() error {
	entries := f.validEntries()
	if strings.TrimSpace(f.GeneralReason) == "" && len(entries) == 0 {
		return apperrors.ErrChangeRequestEmpty
	}
	for _, c := range entries {
		if strings.TrimSpace(c.NewValue) == "" || strings.TrimSpace(c.Reason) == "" {
			return &apperrors.CustomError{
				Err:     apperrors.ErrChangeRequestIncomplete,
				Message: fmt.Sprintf("change for %s needs a new value and a reason", c.FieldDisplayName),
			}
		}
	}
	return nil
}

// Summary flattens the form into the human-readable string admins review.
// With no field entries it is just the general reason; otherwise each entry
// renders as `<Label>: "<current>" → "<new>"` joined by "; ".
func (f *ChangeForm) Summary() string {
	entries := f.validEntries()
	if len(entries) == 0 {
		return f.GeneralReason
	}
	parts := make([]string, 0, len(entries))
	for _, c := range entries {
		parts = append(parts, fmt.Sprintf("%s: %q → %q", c.FieldDisplayName, c.CurrentValue, c.NewValue))
	}
	return "Requested changes: " + strings.Join(parts, "; ")
}

// PermissionRequestPayload is the POST body for request-update-permission.
type PermissionRequestPayload struct {
	UpdatePermissionReason string                          `json:"updatePermissionReason"`
	RequestedChanges       map[string]models.ChangeRequest `json:"requestedChanges"`
	ChangesSummary         string                          `json:"changesSummary"`
}

// Payload builds the submission body: the requested changes keyed by field
// name plus the flattened summary.
func (f *ChangeForm) Payload() PermissionRequestPayload {
	changes := make(map[string]models.ChangeRequest)
	for _, c := range f.validEntries() {
		changes[c.FieldName] = c
	}
	return PermissionRequestPayload{
		UpdatePermissionReason: f.GeneralReason,
		RequestedChanges:       changes,
		ChangesSummary:         f.Summary(),
	}
}

// AvailableFields lists the profile fields not yet claimed by another entry,
// for entry i's picker.
func (f *ChangeForm) AvailableFields(i int) []models.ProfileField {
	taken := make(map[string]bool)
	for j, c := range f.Changes {
		if j != i && c.FieldName != "" {
			taken[c.FieldName] = true
		}
	}
	var out []models.ProfileField
	for _, field := range models.RequiredProfileFields {
		if !taken[field.Name] {
			out = append(out, field)
		}
	}
	return out
}

// Reset clears the form, used when a rejected request is re-opened.
func (f *ChangeForm) Reset() {
	f.GeneralReason = ""
	f.Changes = nil
	f.Locked = false
}
