package models

// ExamFormStatus is the tri-state progress of a submitted exam form.
type ExamFormStatus string

const (
	ExamFormSubmitted           ExamFormStatus = "submitted"
	ExamFormVerified            ExamFormStatus = "verified"
	ExamFormHallTicketAvailable ExamFormStatus = "hall-ticket-available"
)

// ExamForm is one exam registration, unique per (semester, session, type,
// month) tuple per student.
type ExamForm struct {
	ID          string         `json:"_id"`
	Semester    int            `json:"semester"`
	Session     string         `json:"session"`
	ExamType    string         `json:"examType"`
	Month       string         `json:"month"`
	Status      ExamFormStatus `json:"status"`
	SubmittedAt string         `json:"submittedAt"`
}

// ExamDetails is everything the exam screen needs: open windows to register
// for plus the student's already-submitted forms.
type ExamDetails struct {
	OpenSessions []ExamSession `json:"openSessions"`
	Forms        []ExamForm    `json:"forms"`
}

// ExamSession is an exam window currently accepting form submissions.
type ExamSession struct {
	Semester int    `json:"semester"`
	Session  string `json:"session"`
	ExamType string `json:"examType"`
	Month    string `json:"month"`
	Deadline string `json:"deadline"`
}
