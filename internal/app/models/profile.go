package models

// PermissionStatus tracks the lifecycle of a profile update-permission request.
type PermissionStatus string

const (
	PermissionNone      PermissionStatus = "none"
	PermissionRequested PermissionStatus = "requested"
	PermissionApproved  PermissionStatus = "approved"
	PermissionRejected  PermissionStatus = "rejected"
)

// StudentProfile is the authenticated student's record as the backend last
// reported it. The portal treats it as a cache invalidated on every auth check.
type StudentProfile struct {
	ID         string `json:"_id"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	RollNumber string `json:"rollNumber"`

	// Required personal details. Five or more of these being empty marks the
	// profile as first-time, which unlocks direct editing.
	PhoneNumber   string `json:"phoneNumber"`
	DateOfBirth   string `json:"dateOfBirth"`
	Gender        string `json:"gender"`
	FatherName    string `json:"fatherName"`
	MotherName    string `json:"motherName"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PinCode       string `json:"pinCode"`
	GuardianPhone string `json:"guardianPhone"`

	PhotoURL string `json:"photoUrl"`
	CourseID string `json:"courseId"`
	Semester int    `json:"semester"`

	// WantsHostel mirrors the server-side rule that hostel residents cannot
	// apply for a bus pass; the portal only disables the form with it.
	WantsHostel bool `json:"wantsHostel"`

	UpdatePermission UpdatePermission `json:"updatePermission"`
}

// UpdatePermission is the admin-review state of the student's latest
// permission-change request.
type UpdatePermission struct {
	Status       PermissionStatus `json:"status"`
	Reason       string           `json:"reason,omitempty"`
	AdminComment string           `json:"adminComment,omitempty"`
	RequestedAt  string           `json:"requestedAt,omitempty"`
}

// ChangeRequest is one proposed field edit inside a permission request.
type ChangeRequest struct {
	FieldName        string `json:"fieldName"`
	FieldDisplayName string `json:"fieldDisplayName"`
	CurrentValue     string `json:"currentValue"`
	NewValue         string `json:"newValue"`
	Reason           string `json:"reason"`
}
