package models

// HostelAllocation is the student's hostel record once a room is assigned.
// A backend 404 on this resource means "not allocated yet", not an error.
type HostelAllocation struct {
	Allocated  bool   `json:"allocated"`
	HostelName string `json:"hostelName"`
	Floor      int    `json:"floor"`
	RoomNumber string `json:"roomNumber"`

	AcademicYear string  `json:"academicYear"`
	FeeAmount    float64 `json:"feeAmount"`
	FeePaid      bool    `json:"feePaid"`
	PaymentID    string  `json:"paymentId,omitempty"`
}

// BusPassStatus is the admin-review state of a bus pass application.
type BusPassStatus string

const (
	BusPassPending  BusPassStatus = "pending"
	BusPassApproved BusPassStatus = "approved"
	BusPassRejected BusPassStatus = "rejected"
)

// BusPass is a student's bus pass application. One per student; mutually
// exclusive with hostel residence (enforced server-side).
type BusPass struct {
	ID                    string        `json:"_id"`
	DistanceFromHomeInKms float64       `json:"distanceFromHomeInKms"`
	PickupPoint           string        `json:"pickupPoint"`
	Status                BusPassStatus `json:"status"`
	AppliedAt             string        `json:"appliedAt"`
	AdminComment          string        `json:"adminComment,omitempty"`
}
