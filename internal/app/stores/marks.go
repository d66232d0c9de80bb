package stores

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/backend"
)

// MarksStore holds the per-subject internal marks.
type MarksStore struct {
	container
	client *backend.Client
	logger zerolog.Logger

	records []models.MarkRecord
}

// NewMarksStore creates the marks container.
func NewMarksStore(client *backend.Client, logger zerolog.Logger) *MarksStore {
	return &MarksStore{
		client: client,
		logger: logger.With().Str("store", "marks").Logger(),
	}
}

// Fetch refreshes the mark records.
func (s *MarksStore) Fetch(ctx context.Context) error {
	s.begin()
	var records []models.MarkRecord
	if err := s.client.Get(ctx, "/api/marks/marks", &records); err != nil {
		s.mu.Lock()
		s.records = nil
		s.mu.Unlock()
		s.fail(err, "failed to fetch marks")
		return err
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	s.settle()
	return nil
}

// Records returns the held mark records.
func (s *MarksStore) Records() []models.MarkRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records
}

// Grouped returns the held records rolled up by semester.
func (s *MarksStore) Grouped() []models.SemesterMarks {
	return GroupMarksBySemester(s.Records())
}

// GroupMarksBySemester rolls mark records up into per-semester totals.
func GroupMarksBySemester(records []models.MarkRecord) []models.SemesterMarks {
	bySem := make(map[int]*models.SemesterMarks)
	for _, rec := range records {
		group, ok := bySem[rec.Semester]
		if !ok {
			group = &models.SemesterMarks{Semester: rec.Semester}
			bySem[rec.Semester] = group
		}
		group.Records = append(group.Records, rec)
		group.TotalMarks += rec.InternalMarks
		group.MaxMarks += rec.MaxMarks
	}

	out := make([]models.SemesterMarks, 0, len(bySem))
	for _, group := range bySem {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Semester < out[j].Semester })
	return out
}
