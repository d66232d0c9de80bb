package models

// PaymentStatus enumerates the lifecycle of a fee obligation.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentPaid     PaymentStatus = "paid"
	PaymentOverdue  PaymentStatus = "overdue"
)

// PaymentRecord is one entry in a payment history (hostel or course fees).
// Histories are append-only from the portal's point of view.
type PaymentRecord struct {
	ID            string        `json:"_id"`
	AcademicYear  string        `json:"academicYear"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	PaymentID     string        `json:"paymentId"`
	OrderID       string        `json:"orderId"`
	CreatedAt     string        `json:"createdAt"`
	PaidAt        string        `json:"paidAt,omitempty"`
	FeeBreakdown  []FeeLine     `json:"feeBreakdown,omitempty"`
	FeeRecordID   string        `json:"feeRecordId,omitempty"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
}

// FeeLine is one row of a fee breakdown on a receipt.
type FeeLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// PendingOrder is an order created earlier but never completed at the
// gateway. The checkout flow can resume it instead of creating a new one.
type PendingOrder struct {
	OrderID      string  `json:"orderId"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	AcademicYear string  `json:"academicYear"`
	FeeRecordID  string  `json:"feeRecordId,omitempty"`
}

// Order is a freshly created gateway order as returned by the backend.
type Order struct {
	OrderID     string  `json:"orderId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	FeeRecordID string  `json:"feeRecordId,omitempty"`
}

// YearwiseFee is one academic year's slice of the student's fee structure.
type YearwiseFee struct {
	AcademicYear string        `json:"academicYear"`
	TotalAmount  float64       `json:"totalAmount"`
	PaidAmount   float64       `json:"paidAmount"`
	DueDate      string        `json:"dueDate"`
	Status       PaymentStatus `json:"status"`
	Breakdown    []FeeLine     `json:"breakdown,omitempty"`
}

// FeeStatus is the summary card on the course-fees screen.
type FeeStatus struct {
	TotalDue     float64       `json:"totalDue"`
	TotalPaid    float64       `json:"totalPaid"`
	NextDueDate  string        `json:"nextDueDate"`
	CurrentYear  string        `json:"currentYear"`
	OverallState PaymentStatus `json:"overallState"`
}
