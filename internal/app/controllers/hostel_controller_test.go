package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/student-portal/internal/app/session"
	"github.com/campusgate/student-portal/internal/backend"
	"github.com/campusgate/student-portal/internal/config"
	"github.com/campusgate/student-portal/internal/middleware"
)

// fakeBackend serves just enough of the ERP API for the callback flow.
type fakeBackend struct {
	verifyFails bool
	verified    bool
}

func (f *fakeBackend) handler() http.Handler {
	env := func(w http.ResponseWriter, data interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": true, "data": data})
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/check-auth", func(w http.ResponseWriter, r *http.Request) {
		env(w, map[string]interface{}{"fullName": "Asha Rao", "email": "asha@example.edu"})
	})
	mux.HandleFunc("/api/payment/verify", func(w http.ResponseWriter, r *http.Request) {
		if f.verifyFails {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": false, "message": "signature mismatch"})
			return
		}
		f.verified = true
		env(w, nil)
	})
	mux.HandleFunc("/api/hostel/payment-history", func(w http.ResponseWriter, r *http.Request) {
		if !f.verified {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		env(w, []map[string]interface{}{{"paymentId": "pay_abc", "amount": 45000.0}})
	})
	mux.HandleFunc("/api/hostel", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	return mux
}

// newCallbackRig wires the middleware chain and the callback route around a
// fake backend and returns the router plus a logged-in session cookie.
func newCallbackRig(t *testing.T, fake *fakeBackend) (*gin.Engine, *http.Cookie) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = srv.URL
	cfg.Backend.Timeout = "5s"
	cfg.Session.CookieName = "portal_session"

	proto, err := backend.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	registry := session.NewRegistry(proto, cfg.SessionTTL(), zerolog.Nop())
	sm := middleware.NewSessionMiddleware(registry, cfg.Session.CookieName)

	s := registry.Issue()
	require.NoError(t, s.Stores.Auth.CheckAuth(context.Background()))

	ctl := NewHostelController(cfg, zerolog.Nop())
	router := gin.New()
	router.Use(sm.Resolve())
	authed := router.Group("/", sm.RequireAuth())
	authed.POST("/hostel/pay/callback", ctl.PayCallback)

	return router, &http.Cookie{Name: cfg.Session.CookieName, Value: s.ID}
}

func postCallback(router *gin.Engine, cookie *http.Cookie, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hostel/pay/callback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(rec, req)
	return rec
}

const callbackBody = `{"order_id":"order_77","payment_id":"pay_abc","signature":"sig"}`

func TestHostelPayCallback_Verified(t *testing.T) {
	fake := &fakeBackend{}
	router, cookie := newCallbackRig(t, fake)

	rec := postCallback(router, cookie, callbackBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "/hostel?tab=history", resp.Data.Redirect)
	assert.True(t, fake.verified)
}

func TestHostelPayCallback_VerificationFailure(t *testing.T) {
	router, cookie := newCallbackRig(t, &fakeBackend{verifyFails: true})

	rec := postCallback(router, cookie, callbackBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, "signature mismatch", resp.Message)
}

func TestHostelPayCallback_IncompletePayloadRejected(t *testing.T) {
	router, cookie := newCallbackRig(t, &fakeBackend{})

	rec := postCallback(router, cookie, `{"order_id":"order_77"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHostelPayCallback_RequiresSession(t *testing.T) {
	router, _ := newCallbackRig(t, &fakeBackend{})

	rec := postCallback(router, nil, callbackBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Status bool `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
}
