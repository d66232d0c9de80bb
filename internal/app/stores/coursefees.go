package stores

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/app/payment"
	"github.com/campusgate/student-portal/internal/backend"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

// CourseFeesStore holds the course-fee status card, the yearwise fee
// structure, the pending dues and the payment history.
type CourseFeesStore struct {
	container
	client *backend.Client
	logger zerolog.Logger

	status    *models.FeeStatus
	structure []models.YearwiseFee
	pending   []models.YearwiseFee
	history   []models.PaymentRecord
}

// NewCourseFeesStore creates the course-fees container.
func NewCourseFeesStore(client *backend.Client, logger zerolog.Logger) *CourseFeesStore {
	return &CourseFeesStore{
		client: client,
		logger: logger.With().Str("store", "coursefees").Logger(),
	}
}

// FetchStatus refreshes the summary card.
func (s *CourseFeesStore) FetchStatus(ctx context.Context) error {
	s.begin()
	var status models.FeeStatus
	if err := s.client.Get(ctx, "/api/course-fees/status", &status); err != nil {
		s.mu.Lock()
		s.status = nil
		s.mu.Unlock()
		s.fail(err, "failed to fetch fee status")
		return err
	}
	s.mu.Lock()
	s.status = &status
	s.mu.Unlock()
	s.settle()
	return nil
}

// FetchStructure refreshes the yearwise fee structure.
func (s *CourseFeesStore) FetchStructure(ctx context.Context) error {
	s.begin()
	var structure []models.YearwiseFee
	if err := s.client.Get(ctx, "/api/course-fees/yearwise-structure", &structure); err != nil {
		s.mu.Lock()
		s.structure = nil
		s.mu.Unlock()
		s.fail(err, "failed to fetch fee structure")
		return err
	}
	s.mu.Lock()
	s.structure = structure
	s.mu.Unlock()
	s.settle()
	return nil
}

// FetchPending refreshes the outstanding dues. 404 means nothing is due.
func (s *CourseFeesStore) FetchPending(ctx context.Context) error {
	s.begin()
	var pending []models.YearwiseFee
	if err := s.client.Get(ctx, "/api/course-fees/pending", &pending); err != nil {
		s.mu.Lock()
		s.pending = nil
		s.mu.Unlock()
		if isAbsence(err) {
			s.settle()
			return nil
		}
		s.fail(err, "failed to fetch pending fees")
		return err
	}
	s.mu.Lock()
	s.pending = pending
	s.mu.Unlock()
	s.settle()
	return nil
}

// FetchHistory refreshes the course-fee payment history. 404 is an empty
// history, not an error.
func (s *CourseFeesStore) FetchHistory(ctx context.Context) error {
	s.begin()
	var history []models.PaymentRecord
	if err := s.client.Get(ctx, "/api/course-fees/history", &history); err != nil {
		s.mu.Lock()
		s.history = nil
		s.mu.Unlock()
		if isAbsence(err) {
			s.settle()
			return nil
		}
		s.fail(err, "failed to fetch fee payment history")
		return err
	}
	s.mu.Lock()
	s.history = history
	s.mu.Unlock()
	s.settle()
	return nil
}

// CreateOrder asks the backend to open a gateway order for a fee record.
func (s *CourseFeesStore) CreateOrder(ctx context.Context, feeRecordID string) (*models.Order, error) {
	s.begin()
	body := map[string]string{"feeRecordId": feeRecordID}
	var order models.Order
	if err := s.client.Post(ctx, "/api/course-fees/create-order", body, &order); err != nil {
		s.fail(err, "failed to create payment order")
		return nil, err
	}
	s.settle()
	return &order, nil
}

// VerifyPayment forwards the signed gateway callback to the backend. See
// HostelStore.VerifyPayment for the no-retry rule.
func (s *CourseFeesStore) VerifyPayment(ctx context.Context, v payment.Verification) error {
	s.begin()
	if err := s.client.Post(ctx, "/api/course-fees/verify-payment", v, nil); err != nil {
		s.fail(err, "payment verification failed")
		return &apperrors.CustomError{
			Err:     apperrors.ErrPaymentVerification,
			Message: apperrors.MessageFor(err, "payment verification failed"),
		}
	}
	s.settle()
	return nil
}

// HasPayment reports whether the held history contains the payment id.
func (s *CourseFeesStore) HasPayment(paymentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.history {
		if rec.PaymentID == paymentID {
			return true
		}
	}
	return false
}

// Status returns the held summary card.
func (s *CourseFeesStore) Status() *models.FeeStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Structure returns the held yearwise fee structure.
func (s *CourseFeesStore) Structure() []models.YearwiseFee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.structure
}

// Pending returns the held outstanding dues.
func (s *CourseFeesStore) Pending() []models.YearwiseFee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// History returns the held payment history.
func (s *CourseFeesStore) History() []models.PaymentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// Receipt finds the history entry for a payment id, for PDF rendering.
func (s *CourseFeesStore) Receipt(paymentID string) (*models.PaymentRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].PaymentID == paymentID {
			return &s.history[i], true
		}
	}
	return nil, false
}
