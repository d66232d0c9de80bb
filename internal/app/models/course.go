package models

// Course is the student's enrolled course. Read-only from the portal's side.
type Course struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	School        string   `json:"school"`
	Department    string   `json:"department"`
	DurationYears int      `json:"durationYears"`
	Teachers      []string `json:"teachers"`
}
