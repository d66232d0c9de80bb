package stores

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/backend"
)

// LoginRequest is the credential payload forwarded to the backend verbatim.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// SignUpRequest creates a new student account on the backend.
type SignUpRequest struct {
	FullName   string `json:"fullName" form:"fullName" binding:"required"`
	Email      string `json:"email" form:"email" binding:"required,email"`
	RollNumber string `json:"rollNumber" form:"rollNumber" binding:"required"`
	Password   string `json:"password" form:"password" binding:"required,min=8"`
	CourseID   string `json:"courseId" form:"courseId" binding:"required"`
}

// AuthStore holds the authenticated student's profile and owns the
// profile-update permission workflow.
type AuthStore struct {
	container
	client *backend.Client
	logger zerolog.Logger

	profile *models.StudentProfile

	// firstTime is decided on the first successful auth check of the session
	// and never re-evaluated, so a user who fills their profile mid-session
	// keeps direct-edit access until they log in again.
	firstTime    bool
	firstTimeSet bool

	changeForm ChangeForm
}

// NewAuthStore creates the auth container.
func NewAuthStore(client *backend.Client, logger zerolog.Logger) *AuthStore {
	return &AuthStore{
		client: client,
		logger: logger.With().Str("store", "auth").Logger(),
	}
}

// Login authenticates against the backend. The backend's session cookie lands
// in this session's cookie jar as a side effect.
func (s *AuthStore) Login(ctx context.Context, req LoginRequest) error {
	s.begin()
	var profile models.StudentProfile
	if err := s.client.Post(ctx, "/api/auth/login", req, &profile); err != nil {
		s.fail(err, "login failed")
		return err
	}
	s.setProfile(&profile)
	s.settle()
	return nil
}

// SignUp registers a new student account and signs them in.
func (s *AuthStore) SignUp(ctx context.Context, req SignUpRequest) error {
	s.begin()
	var profile models.StudentProfile
	if err := s.client.Post(ctx, "/api/auth/sign-up", req, &profile); err != nil {
		s.fail(err, "sign up failed")
		return err
	}
	s.setProfile(&profile)
	s.settle()
	return nil
}

// Logout invalidates the backend session. Local state is discarded by the
// session registry regardless of the backend's answer.
func (s *AuthStore) Logout(ctx context.Context) error {
	err := s.client.Post(ctx, "/api/auth/logout", nil, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Backend logout failed; dropping session anyway")
	}
	return err
}

// CheckAuth refreshes the profile snapshot from the backend. Fetch-style: a
// failure is swallowed into the container state.
func (s *AuthStore) CheckAuth(ctx context.Context) error {
	s.begin()
	var profile models.StudentProfile
	if err := s.client.Get(ctx, "/api/auth/check-auth", &profile); err != nil {
		s.mu.Lock()
		s.profile = nil
		s.mu.Unlock()
		s.fail(err, "failed to fetch profile")
		return err
	}
	s.setProfile(&profile)
	s.settle()
	return nil
}

// setProfile replaces the held snapshot and pins the first-time decision the
// first time a profile is seen.
func (s *AuthStore) setProfile(p *models.StudentProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	if !s.firstTimeSet {
		s.firstTime = models.IsFirstTimeUser(p)
		s.firstTimeSet = true
	}
}

// Profile returns the last-fetched profile snapshot, nil when logged out or
// after a failed fetch.
func (s *AuthStore) Profile() *models.StudentProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Authenticated reports whether a profile snapshot is held.
func (s *AuthStore) Authenticated() bool {
	return s.Profile() != nil
}

// FirstTime reports whether this login bypasses the permission workflow.
func (s *AuthStore) FirstTime() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstTime
}

// UpdatePersonalDetails submits profile fields (and optionally a photo) as
// multipart form data. Only first-time users and students whose permission
// request was approved may call this; the backend re-checks either way.
func (s *AuthStore) UpdatePersonalDetails(ctx context.Context, fields map[string]string, photo *backend.FormFile) error {
	s.begin()
	var files []backend.FormFile
	if photo != nil {
		files = append(files, *photo)
	}
	var profile models.StudentProfile
	if err := s.client.PostMultipart(ctx, "/api/auth/update-personal-details", fields, files, &profile); err != nil {
		s.fail(err, "failed to update profile")
		return err
	}
	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()
	s.settle()
	return nil
}

// FetchUpdatePermission refreshes the admin-review state of the student's
// latest permission request.
func (s *AuthStore) FetchUpdatePermission(ctx context.Context) error {
	s.begin()
	var perm models.UpdatePermission
	if err := s.client.Get(ctx, "/api/auth/update-permission", &perm); err != nil {
		if isAbsence(err) {
			// Never requested: a valid blank state.
			s.mu.Lock()
			if s.profile != nil {
				s.profile.UpdatePermission = models.UpdatePermission{Status: models.PermissionNone}
			}
			s.mu.Unlock()
			s.settle()
			return nil
		}
		s.fail(err, "failed to fetch update permission status")
		return err
	}
	s.mu.Lock()
	if s.profile != nil {
		s.profile.UpdatePermission = perm
	}
	s.mu.Unlock()
	s.settle()
	return nil
}

// ChangeForm exposes the permission-request form for the profile screen.
func (s *AuthStore) ChangeForm() *ChangeForm {
	return &s.changeForm
}

// RequestUpdatePermission validates the change form, builds the summary and
// submits the permission request. On success the form locks and the local
// permission status flips to requested.
func (s *AuthStore) RequestUpdatePermission(ctx context.Context) error {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()

	if err := s.changeForm.Validate(); err != nil {
		return err
	}

	payload := s.changeForm.Payload()

	s.begin()
	if err := s.client.Post(ctx, "/api/auth/request-update-permission", payload, nil); err != nil {
		s.fail(err, "failed to submit change request")
		return err
	}

	s.mu.Lock()
	s.changeForm.Locked = true
	if profile != nil {
		profile.UpdatePermission = models.UpdatePermission{
			Status: models.PermissionRequested,
			Reason: payload.ChangesSummary,
		}
	}
	s.mu.Unlock()
	s.settle()
	return nil
}
