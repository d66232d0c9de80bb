package stores

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/backend"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

// maxBusPassDistanceKms: routes only run within this radius; the backend
// enforces the same cutoff.
const maxBusPassDistanceKms = 60

// BusPassApplication is the apply-form payload.
type BusPassApplication struct {
	DistanceFromHomeInKms float64 `json:"distanceFromHomeInKms" binding:"required" form:"distanceFromHomeInKms"`
	PickupPoint           string  `json:"pickupPoint" binding:"required" form:"pickupPoint"`
}

// BusPassStore holds the student's bus pass application. 404 from the
// backend means no application exists yet.
type BusPassStore struct {
	container
	client *backend.Client
	logger zerolog.Logger

	pass *models.BusPass
}

// NewBusPassStore creates the bus-pass container.
func NewBusPassStore(client *backend.Client, logger zerolog.Logger) *BusPassStore {
	return &BusPassStore{
		client: client,
		logger: logger.With().Str("store", "buspass").Logger(),
	}
}

// Fetch refreshes the bus pass snapshot; 404 clears it without an error.
func (s *BusPassStore) Fetch(ctx context.Context) error {
	s.begin()
	var pass models.BusPass
	if err := s.client.Get(ctx, "/api/hostel/my-bus-pass", &pass); err != nil {
		s.mu.Lock()
		s.pass = nil
		s.mu.Unlock()
		if isAbsence(err) {
			s.settle()
			return nil
		}
		s.fail(err, "failed to fetch bus pass")
		return err
	}
	s.mu.Lock()
	s.pass = &pass
	s.mu.Unlock()
	s.settle()
	return nil
}

// Apply submits a bus pass application. Distance is validated before any
// request goes out; an out-of-range value never reaches the backend.
func (s *BusPassStore) Apply(ctx context.Context, app BusPassApplication) error {
	if app.DistanceFromHomeInKms < 0 {
		return apperrors.NewValidationError("distance from home cannot be negative")
	}
	if app.DistanceFromHomeInKms >= maxBusPassDistanceKms {
		return apperrors.NewValidationError("bus routes only cover homes within 60 km")
	}

	s.begin()
	var pass models.BusPass
	if err := s.client.Post(ctx, "/api/hostel/apply-bus-pass", app, &pass); err != nil {
		s.fail(err, "failed to apply for bus pass")
		return err
	}
	s.mu.Lock()
	s.pass = &pass
	s.mu.Unlock()
	s.settle()
	return nil
}

// Pass returns the held application, nil when none exists.
func (s *BusPassStore) Pass() *models.BusPass {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pass
}
