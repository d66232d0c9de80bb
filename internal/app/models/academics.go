package models

// AttendanceRecord is one subject's attendance counters for one semester.
type AttendanceRecord struct {
	Subject         string `json:"subject"`
	Semester        int    `json:"semester"`
	AttendedClasses int    `json:"attendedClasses"`
	TotalClasses    int    `json:"totalClasses"`
}

// MarkRecord is one subject's internal marks for one semester.
type MarkRecord struct {
	Subject       string  `json:"subject"`
	Semester      int     `json:"semester"`
	InternalMarks float64 `json:"internalMarks"`
	MaxMarks      float64 `json:"maxMarks"`
	ExamType      string  `json:"examType,omitempty"`
}

// SemesterAttendance is the per-semester roll-up the attendance screen
// renders. It is derived on every fetch, never persisted.
type SemesterAttendance struct {
	Semester          int
	Records           []AttendanceRecord
	TotalAttended     int
	TotalClasses      int
	OverallPercentage int
}

// SemesterMarks is the per-semester roll-up of mark records.
type SemesterMarks struct {
	Semester   int
	Records    []MarkRecord
	TotalMarks float64
	MaxMarks   float64
}

// Period is one timetable slot referencing a subject and teacher.
type Period struct {
	Number  int    `json:"number"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
	Room    string `json:"room,omitempty"`
}

// TimetableDay maps a weekday to its ordered periods.
type TimetableDay struct {
	Day     string   `json:"day"`
	Periods []Period `json:"periods"`
}

// Timetable is the per-course, per-semester weekly grid.
type Timetable struct {
	CourseID string         `json:"courseId"`
	Semester int            `json:"semester"`
	Days     []TimetableDay `json:"days"`
}
