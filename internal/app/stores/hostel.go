package stores

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/app/payment"
	"github.com/campusgate/student-portal/internal/backend"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

// HostelStore holds the hostel allocation, its payment history and the
// pending-order resume path. For all three resources the backend's 404 means
// "nothing yet" and is a valid empty state.
type HostelStore struct {
	container
	client *backend.Client
	logger zerolog.Logger

	allocation *models.HostelAllocation
	history    []models.PaymentRecord
	pending    *models.PendingOrder
}

// NewHostelStore creates the hostel container.
func NewHostelStore(client *backend.Client, logger zerolog.Logger) *HostelStore {
	return &HostelStore{
		client: client,
		logger: logger.With().Str("store", "hostel").Logger(),
	}
}

// FetchAllocation refreshes the allocation snapshot. 404 clears it without
// recording an error so the screen renders the apply CTA.
func (s *HostelStore) FetchAllocation(ctx context.Context) error {
	s.begin()
	var alloc models.HostelAllocation
	if err := s.client.Get(ctx, "/api/hostel", &alloc); err != nil {
		s.mu.Lock()
		s.allocation = nil
		s.mu.Unlock()
		if isAbsence(err) {
			s.settle()
			return nil
		}
		s.fail(err, "failed to fetch hostel details")
		return err
	}
	s.mu.Lock()
	s.allocation = &alloc
	s.mu.Unlock()
	s.settle()
	return nil
}

// FetchHistory refreshes the hostel payment history. 404 is an empty history.
func (s *HostelStore) FetchHistory(ctx context.Context) error {
	s.begin()
	var history []models.PaymentRecord
	if err := s.client.Get(ctx, "/api/hostel/payment-history", &history); err != nil {
		s.mu.Lock()
		s.history = nil
		s.mu.Unlock()
		if isAbsence(err) {
			s.settle()
			return nil
		}
		s.fail(err, "failed to fetch payment history")
		return err
	}
	s.mu.Lock()
	s.history = history
	s.mu.Unlock()
	s.settle()
	return nil
}

// CheckPending asks the backend for an unfinished order so the checkout can
// resume it instead of creating a duplicate. 404 means none.
func (s *HostelStore) CheckPending(ctx context.Context) (*models.PendingOrder, error) {
	s.begin()
	var order models.PendingOrder
	if err := s.client.Get(ctx, "/api/payment/check-pending", &order); err != nil {
		s.mu.Lock()
		s.pending = nil
		s.mu.Unlock()
		if isAbsence(err) {
			s.settle()
			return nil, nil
		}
		s.fail(err, "failed to check pending payment")
		return nil, err
	}
	s.mu.Lock()
	s.pending = &order
	s.mu.Unlock()
	s.settle()
	return &order, nil
}

// CreateOrder asks the backend to create a gateway order for the hostel fee.
// Mutation-style: the error is recorded and returned.
func (s *HostelStore) CreateOrder(ctx context.Context) (*models.Order, error) {
	s.begin()
	var order models.Order
	if err := s.client.Post(ctx, "/api/payment/create-order", nil, &order); err != nil {
		s.fail(err, "failed to create payment order")
		return nil, err
	}
	s.settle()
	return &order, nil
}

// VerifyPayment forwards the gateway's signed callback to the backend. A
// failure here must surface a contact-support message, not a retry: the
// charge may already have gone through.
func (s *HostelStore) VerifyPayment(ctx context.Context, v payment.Verification) error {
	s.begin()
	if err := s.client.Post(ctx, "/api/payment/verify", v, nil); err != nil {
		s.fail(err, "payment verification failed")
		return &apperrors.CustomError{
			Err:     apperrors.ErrPaymentVerification,
			Message: apperrors.MessageFor(err, "payment verification failed"),
		}
	}
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	s.settle()
	return nil
}

// HasPayment reports whether the held history contains the gateway payment
// id. Used as the settle probe after verification.
func (s *HostelStore) HasPayment(paymentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.history {
		if rec.PaymentID == paymentID {
			return true
		}
	}
	return false
}

// Allocation returns the held allocation, nil when not allocated yet.
func (s *HostelStore) Allocation() *models.HostelAllocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocation
}

// History returns the held payment history.
func (s *HostelStore) History() []models.PaymentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// Pending returns the held unfinished order, nil when none.
func (s *HostelStore) Pending() *models.PendingOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Receipt finds the paid history entry for a payment id, for PDF rendering.
func (s *HostelStore) Receipt(paymentID string) (*models.PaymentRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].PaymentID == paymentID {
			return &s.history[i], true
		}
	}
	return nil, false
}
