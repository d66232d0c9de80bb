package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/student-portal/internal/app/payment"
	"github.com/campusgate/student-portal/internal/backend"
	"github.com/campusgate/student-portal/internal/config"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

func paymentVerificationFixture() payment.Verification {
	return payment.Verification{
		OrderID:   "order_77",
		PaymentID: "pay_abc",
		Signature: "sig",
	}
}

// newTestClient spins up a fake backend and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.Handler) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = srv.URL
	cfg.Backend.Timeout = "5s"

	client, err := backend.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	return client
}

// writeEnvelope answers with the backend's {status, data, message} shape.
func writeEnvelope(w http.ResponseWriter, code int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body := map[string]interface{}{
		"status":  code >= 200 && code < 300,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(body)
}

func TestHostelStore_FetchAllocation(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantErrMsg bool
		wantHeld   bool
	}{
		{
			name: "success replaces snapshot",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, map[string]interface{}{
					"hostelName": "A Block", "roomNumber": "214",
				}, "")
			},
			wantHeld: true,
		},
		{
			name: "404 is a valid empty state",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "server error clears data and records message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusInternalServerError, nil, "hostel service down")
			},
			wantErr:    true,
			wantErrMsg: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewHostelStore(newTestClient(t, tt.handler), zerolog.Nop())
			err := store.FetchAllocation(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantErrMsg {
				assert.Equal(t, "hostel service down", store.Err())
			} else {
				assert.Empty(t, store.Err())
			}
			if tt.wantHeld {
				require.NotNil(t, store.Allocation())
				assert.Equal(t, "A Block", store.Allocation().HostelName)
			} else {
				assert.Nil(t, store.Allocation())
			}
			assert.False(t, store.Loading())
		})
	}
}

func TestHostelStore_FailedFetchClearsPreviousData(t *testing.T) {
	var failing atomic.Bool
	store := NewHostelStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			writeEnvelope(w, http.StatusBadGateway, nil, "upstream timeout")
			return
		}
		writeEnvelope(w, http.StatusOK, []map[string]interface{}{
			{"paymentId": "pay_123", "amount": 45000.0, "academicYear": "2024-2025"},
		}, "")
	})), zerolog.Nop())

	require.NoError(t, store.FetchHistory(context.Background()))
	require.Len(t, store.History(), 1)

	failing.Store(true)
	err := store.FetchHistory(context.Background())
	assert.Error(t, err)
	assert.Nil(t, store.History(), "stale data must not survive a failed fetch")
	assert.Equal(t, "upstream timeout", store.Err())

	// A later successful fetch clears the error again.
	failing.Store(false)
	require.NoError(t, store.FetchHistory(context.Background()))
	assert.Empty(t, store.Err())
	assert.Len(t, store.History(), 1)
}

func TestHostelStore_CheckPending(t *testing.T) {
	t.Run("404 means no pending order", func(t *testing.T) {
		store := NewHostelStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})), zerolog.Nop())

		order, err := store.CheckPending(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, order)
		assert.Empty(t, store.Err())
	})

	t.Run("existing order is returned and held", func(t *testing.T) {
		store := NewHostelStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, map[string]interface{}{
				"orderId": "order_77", "amount": 45000.0, "currency": "INR",
			}, "")
		})), zerolog.Nop())

		order, err := store.CheckPending(context.Background())
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "order_77", order.OrderID)
		assert.Equal(t, "order_77", store.Pending().OrderID)
	})
}

func TestHostelStore_VerifyPaymentFailureWrapsSentinel(t *testing.T) {
	store := NewHostelStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, nil, "signature mismatch")
	})), zerolog.Nop())

	err := store.VerifyPayment(context.Background(), paymentVerificationFixture())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentVerification)
	assert.Equal(t, "signature mismatch", apperrors.MessageFor(err, ""))
}

func TestHostelStore_HasPaymentAndReceipt(t *testing.T) {
	store := NewHostelStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []map[string]interface{}{
			{"paymentId": "pay_abc", "amount": 45000.0},
			{"paymentId": "pay_def", "amount": 45000.0},
		}, "")
	})), zerolog.Nop())

	require.NoError(t, store.FetchHistory(context.Background()))
	assert.True(t, store.HasPayment("pay_def"))
	assert.False(t, store.HasPayment("pay_xyz"))

	rec, ok := store.Receipt("pay_abc")
	require.True(t, ok)
	assert.Equal(t, 45000.0, rec.Amount)

	_, ok = store.Receipt("pay_xyz")
	assert.False(t, ok)
}

func TestHostelStore_FetchIsIdempotent(t *testing.T) {
	store := NewHostelStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []map[string]interface{}{
			{"paymentId": "pay_123", "amount": 45000.0, "academicYear": "2024-2025"},
		}, "")
	})), zerolog.Nop())

	require.NoError(t, store.FetchHistory(context.Background()))
	first := store.History()

	require.NoError(t, store.FetchHistory(context.Background()))
	assert.Equal(t, first, store.History(), "refetching an unchanged backend must not change state")
	assert.Empty(t, store.Err())
	assert.False(t, store.Loading())
}

func TestCourseFeesStore_404Handling(t *testing.T) {
	store := NewCourseFeesStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/course-fees/pending", "/api/course-fees/history":
			w.WriteHeader(http.StatusNotFound)
		default:
			writeEnvelope(w, http.StatusInternalServerError, nil, "boom")
		}
	})), zerolog.Nop())

	// Pending and history treat 404 as empty.
	assert.NoError(t, store.FetchPending(context.Background()))
	assert.Empty(t, store.Pending())
	assert.Empty(t, store.Err())

	assert.NoError(t, store.FetchHistory(context.Background()))
	assert.Empty(t, store.History())
	assert.Empty(t, store.Err())

	// Status has no empty state: any failure is an error.
	assert.Error(t, store.FetchStatus(context.Background()))
	assert.Equal(t, "boom", store.Err())
	assert.Nil(t, store.Status())
}

func TestCourseFeesStore_CreateOrderSendsFeeRecordID(t *testing.T) {
	var got map[string]string
	store := NewCourseFeesStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"orderId": "order_9", "amount": 120000.0, "currency": "INR",
		}, "")
	})), zerolog.Nop())

	order, err := store.CreateOrder(context.Background(), "fee-2024")
	require.NoError(t, err)
	assert.Equal(t, "order_9", order.OrderID)
	assert.Equal(t, "fee-2024", got["feeRecordId"])
}

func TestBusPassStore_Apply(t *testing.T) {
	var hits atomic.Int32
	store := NewBusPassStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"pickupPoint": "Main Gate", "distanceFromHomeInKms": 12.0, "status": "pending",
		}, "")
	})), zerolog.Nop())

	tests := []struct {
		name     string
		distance float64
		wantErr  bool
	}{
		{name: "negative distance rejected", distance: -1, wantErr: true},
		{name: "at the 60 km cutoff rejected", distance: 60, wantErr: true},
		{name: "beyond the cutoff rejected", distance: 120, wantErr: true},
		{name: "within range accepted", distance: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := hits.Load()
			err := store.Apply(context.Background(), BusPassApplication{
				DistanceFromHomeInKms: tt.distance,
				PickupPoint:           "Main Gate",
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				assert.Equal(t, before, hits.Load(), "invalid distance must not reach the backend")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, before+1, hits.Load())
				require.NotNil(t, store.Pass())
				assert.Equal(t, "Main Gate", store.Pass().PickupPoint)
			}
		})
	}
}

func TestBusPassStore_Fetch404IsNoPass(t *testing.T) {
	store := NewBusPassStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})), zerolog.Nop())

	assert.NoError(t, store.Fetch(context.Background()))
	assert.Nil(t, store.Pass())
	assert.Empty(t, store.Err())
}

func TestExamStore_SubmitRejectsDuplicateTuple(t *testing.T) {
	var posts atomic.Int32
	store := NewExamStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts.Add(1)
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"openSessions": []map[string]interface{}{},
			"forms": []map[string]interface{}{
				{"semester": 3, "session": "2024-2025", "examType": "regular", "month": "May", "status": "submitted"},
			},
		}, "")
	})), zerolog.Nop())

	require.NoError(t, store.Fetch(context.Background()))

	err := store.Submit(context.Background(), ExamFormSubmission{
		Semester: 3, Session: "2024-2025", ExamType: "regular", Month: "May",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, int32(0), posts.Load(), "duplicate form must not reach the backend")

	// A different tuple goes through and replaces the snapshot.
	err = store.Submit(context.Background(), ExamFormSubmission{
		Semester: 3, Session: "2024-2025", ExamType: "backlog", Month: "May",
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), posts.Load())
}

func TestAuthStore_CheckAuthFailureClearsProfile(t *testing.T) {
	var failing atomic.Bool
	store := NewAuthStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"fullName": "Asha Rao", "email": "asha@example.edu",
		}, "")
	})), zerolog.Nop())

	require.NoError(t, store.CheckAuth(context.Background()))
	assert.True(t, store.Authenticated())

	failing.Store(true)
	err := store.CheckAuth(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.False(t, store.Authenticated())
}

func TestAuthStore_FirstTimeDecisionIsPinned(t *testing.T) {
	full := map[string]interface{}{
		"fullName": "Asha Rao", "phoneNumber": "9000000001", "dateOfBirth": "2004-01-01",
		"gender": "female", "fatherName": "R Rao", "motherName": "S Rao",
		"address": "12 Lake Rd", "city": "Pune", "state": "MH",
		"pinCode": "411001", "guardianPhone": "9000000002",
	}
	var complete atomic.Bool
	store := NewAuthStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if complete.Load() {
			writeEnvelope(w, http.StatusOK, full, "")
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{"fullName": "Asha Rao"}, "")
	})), zerolog.Nop())

	// First check sees a near-empty profile: first-time.
	require.NoError(t, store.CheckAuth(context.Background()))
	assert.True(t, store.FirstTime())

	// Even after the profile fills in, the decision holds for this session.
	complete.Store(true)
	require.NoError(t, store.CheckAuth(context.Background()))
	assert.True(t, store.FirstTime())
}

func TestAuthStore_FetchUpdatePermission404MeansNeverRequested(t *testing.T) {
	store := NewAuthStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/check-auth" {
			writeEnvelope(w, http.StatusOK, map[string]interface{}{"fullName": "Asha Rao"}, "")
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})), zerolog.Nop())

	require.NoError(t, store.CheckAuth(context.Background()))
	require.NoError(t, store.FetchUpdatePermission(context.Background()))
	assert.Empty(t, store.Err())
	require.NotNil(t, store.Profile())
	assert.Equal(t, "none", string(store.Profile().UpdatePermission.Status))
}
