package models

// ProfileField binds a requestable profile field to its display label and a
// typed accessor, so current-value extraction for change requests is
// exhaustive instead of reflective.
type ProfileField struct {
	Name  string
	Label string
	Value func(*StudentProfile) string
}

// RequiredProfileFields is the canonical list of the ten personal-detail
// fields tracked for profile completion and permission-gated edits. Order
// matters only for rendering the field picker.
var RequiredProfileFields = []ProfileField{
	{Name: "phoneNumber", Label: "Phone Number", Value: func(p *StudentProfile) string { return p.PhoneNumber }},
	{Name: "dateOfBirth", Label: "Date of Birth", Value: func(p *StudentProfile) string { return p.DateOfBirth }},
	{Name: "gender", Label: "Gender", Value: func(p *StudentProfile) string { return p.Gender }},
	{Name: "fatherName", Label: "Father's Name", Value: func(p *StudentProfile) string { return p.FatherName }},
	{Name: "motherName", Label: "Mother's Name", Value: func(p *StudentProfile) string { return p.MotherName }},
	{Name: "address", Label: "Address", Value: func(p *StudentProfile) string { return p.Address }},
	{Name: "city", Label: "City", Value: func(p *StudentProfile) string { return p.City }},
	{Name: "state", Label: "State", Value: func(p *StudentProfile) string { return p.State }},
	{Name: "pinCode", Label: "PIN Code", Value: func(p *StudentProfile) string { return p.PinCode }},
	{Name: "guardianPhone", Label: "Guardian Phone", Value: func(p *StudentProfile) string { return p.GuardianPhone }},
}

// LookupProfileField returns the field descriptor for a field name.
func LookupProfileField(name string) (ProfileField, bool) {
	for _, f := range RequiredProfileFields {
		if f.Name == name {
			return f, true
		}
	}
	return ProfileField{}, false
}

// EmptyRequiredFieldCount counts how many of the tracked required fields the
// profile is still missing.
func EmptyRequiredFieldCount(p *StudentProfile) int {
	count := 0
	for _, f := range RequiredProfileFields {
		if f.Value(p) == "" {
			count++
		}
	}
	return count
}

// firstTimeThreshold: at or above this many empty required fields, the
// profile is treated as never completed and may be edited directly.
const firstTimeThreshold = 5

// IsFirstTimeUser reports whether the profile qualifies for direct editing.
// The decision is made once per auth check and not re-evaluated mid-session.
func IsFirstTimeUser(p *StudentProfile) bool {
	return EmptyRequiredFieldCount(p) >= firstTimeThreshold
}
