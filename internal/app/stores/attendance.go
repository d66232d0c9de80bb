package stores

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/backend"
)

// AttendanceStore holds the per-subject attendance counters.
type AttendanceStore struct {
	container
	client *backend.Client
	logger zerolog.Logger

	records []models.AttendanceRecord
}

// NewAttendanceStore creates the attendance container.
func NewAttendanceStore(client *backend.Client, logger zerolog.Logger) *AttendanceStore {
	return &AttendanceStore{
		client: client,
		logger: logger.With().Str("store", "attendance").Logger(),
	}
}

// Fetch refreshes the attendance records.
func (s *AttendanceStore) Fetch(ctx context.Context) error {
	s.begin()
	var records []models.AttendanceRecord
	if err := s.client.Get(ctx, "/api/marks/attendance", &records); err != nil {
		s.mu.Lock()
		s.records = nil
		s.mu.Unlock()
		s.fail(err, "failed to fetch attendance")
		return err
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	s.settle()
	return nil
}

// Records returns the held attendance records.
func (s *AttendanceStore) Records() []models.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records
}

// Grouped returns the held records rolled up by semester.
func (s *AttendanceStore) Grouped() []models.SemesterAttendance {
	return GroupAttendanceBySemester(s.Records())
}

// GroupAttendanceBySemester rolls attendance records up into per-semester
// totals with an overall percentage, rounded to the nearest integer. The
// grouping is recomputed on every fetch; nothing is persisted.
func GroupAttendanceBySemester(records []models.AttendanceRecord) []models.SemesterAttendance {
	bySem := make(map[int]*models.SemesterAttendance)
	for _, rec := range records {
		group, ok := bySem[rec.Semester]
		if !ok {
			group = &models.SemesterAttendance{Semester: rec.Semester}
			bySem[rec.Semester] = group
		}
		group.Records = append(group.Records, rec)
		group.TotalAttended += rec.AttendedClasses
		group.TotalClasses += rec.TotalClasses
	}

	out := make([]models.SemesterAttendance, 0, len(bySem))
	for _, group := range bySem {
		if group.TotalClasses > 0 {
			pct := float64(group.TotalAttended) / float64(group.TotalClasses) * 100
			group.OverallPercentage = int(math.Round(pct))
		}
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Semester < out[j].Semester })
	return out
}
