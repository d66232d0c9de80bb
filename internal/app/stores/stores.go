// Package stores holds the per-login state containers. Each container keeps
// the last-fetched copy of one backend resource plus a loading flag and an
// error string, and exposes the actions that refresh or mutate it.
//
// The contract is uniform: Fetch* actions swallow failures into the
// container's error state so views can render a retry affordance; mutating
// actions record the failure and also return it so the invoking screen can
// branch. Concurrent calls to the same action are not serialized; the
// container is simply overwritten by whichever response lands last.
package stores

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/backend"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

// container carries the state flags shared by every store. The mutex protects
// struct integrity only; it is never held across a network call.
type container struct {
	mu      sync.Mutex
	loading bool
	err     string
}

// begin marks the container as loading and clears any previous error.
func (c *container) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
}

// fail records an error message and ends the loading state.
func (c *container) fail(err error, fallback string) {
	c.mu.Lock()
	c.loading = false
	c.err = apperrors.MessageFor(err, fallback)
	c.mu.Unlock()
}

// settle ends the loading state without touching the error, for success paths
// that already cleared it in begin.
func (c *container) settle() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// Loading reports whether a fetch or mutation is in flight.
func (c *container) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last recorded error message, empty when healthy.
func (c *container) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// isAbsence reports whether err is the backend's 404, which several resources
// define as a valid "no record yet" state.
func isAbsence(err error) bool {
	return errors.Is(err, apperrors.ErrNotFoundYet)
}

// Set bundles the nine containers belonging to one portal session. All of
// them share the session's backend client and therefore its cookies.
type Set struct {
	Auth       *AuthStore
	Course     *CourseStore
	Hostel     *HostelStore
	BusPass    *BusPassStore
	CourseFees *CourseFeesStore
	Attendance *AttendanceStore
	Marks      *MarksStore
	Timetable  *TimetableStore
	Exam       *ExamStore
}

// NewSet builds the containers for a fresh session.
func NewSet(client *backend.Client, logger zerolog.Logger) *Set {
	return &Set{
		Auth:       NewAuthStore(client, logger),
		Course:     NewCourseStore(client, logger),
		Hostel:     NewHostelStore(client, logger),
		BusPass:    NewBusPassStore(client, logger),
		CourseFees: NewCourseFeesStore(client, logger),
		Attendance: NewAttendanceStore(client, logger),
		Marks:      NewMarksStore(client, logger),
		Timetable:  NewTimetableStore(client, logger),
		Exam:       NewExamStore(client, logger),
	}
}
