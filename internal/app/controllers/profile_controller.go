package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/app/stores"
	"github.com/campusgate/student-portal/internal/backend"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

// maxPhotoBytes caps profile photo uploads at 2 MB.
const maxPhotoBytes = 2 << 20

// ProfileController handles the profile completion screen and the
// permission-request workflow for locked profiles.
type ProfileController struct {
	logger zerolog.Logger
}

// NewProfileController creates a new profile controller.
func NewProfileController(logger zerolog.Logger) *ProfileController {
	return &ProfileController{logger: logger.With().Str("controller", "profile").Logger()}
}

// Show renders the profile screen. First-time users get the direct-edit
// form; returning users get their permission state and the change-request
// workflow.
func (ctl *ProfileController) Show(c *gin.Context) {
	s := currentSession(c)
	auth := s.Stores.Auth

	// Refresh both snapshots; failures land in container state and render
	// inline with a retry affordance.
	_ = auth.CheckAuth(c.Request.Context())
	_ = auth.FetchUpdatePermission(c.Request.Context())

	form := auth.ChangeForm()
	c.HTML(http.StatusOK, "profile.html", pageData(c, "profile", gin.H{
		"FirstTime":  auth.FirstTime(),
		"Error":      auth.Err(),
		"Fields":     models.RequiredProfileFields,
		"ChangeForm": form,
		"Notice":     c.Query("notice"),
	}))
}

// UpdateDetails accepts the direct-edit form (first-time users or approved
// requests): the ten personal-detail fields plus an optional photo, posted
// through to the backend as multipart.
func (ctl *ProfileController) UpdateDetails(c *gin.Context) {
	s := currentSession(c)

	fields := make(map[string]string)
	for _, f := range models.RequiredProfileFields {
		fields[f.Name] = c.PostForm(f.Name)
	}

	photo, err := ctl.readPhoto(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "profile.html", pageData(c, "profile", gin.H{
			"FirstTime":  s.Stores.Auth.FirstTime(),
			"Error":      messageOf(err, "invalid photo"),
			"Fields":     models.RequiredProfileFields,
			"ChangeForm": s.Stores.Auth.ChangeForm(),
		}))
		return
	}

	if err := s.Stores.Auth.UpdatePersonalDetails(c.Request.Context(), fields, photo); err != nil {
		c.HTML(http.StatusBadGateway, "profile.html", pageData(c, "profile", gin.H{
			"FirstTime":  s.Stores.Auth.FirstTime(),
			"Error":      messageOf(err, "failed to update profile"),
			"Fields":     models.RequiredProfileFields,
			"ChangeForm": s.Stores.Auth.ChangeForm(),
		}))
		return
	}

	c.Redirect(http.StatusFound, "/profile?notice=Profile+updated")
}

// readPhoto extracts and validates the optional photo upload.
func (ctl *ProfileController) readPhoto(c *gin.Context) (*backend.FormFile, error) {
	header, err := c.FormFile("photo")
	if err != nil {
		// No file part at all is fine; the photo is optional.
		return nil, nil
	}
	if header.Size > maxPhotoBytes {
		return nil, apperrors.NewValidationError("photo must be 2 MB or smaller")
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperrors.NewValidationError("could not read uploaded photo")
	}
	defer f.Close()

	contents, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes+1))
	if err != nil || len(contents) > maxPhotoBytes {
		return nil, apperrors.NewValidationError("photo must be 2 MB or smaller")
	}

	switch http.DetectContentType(contents) {
	case "image/jpeg", "image/png":
	default:
		return nil, apperrors.NewValidationError("photo must be a JPEG or PNG image")
	}

	return &backend.FormFile{Field: "photo", Name: header.Filename, Contents: contents}, nil
}

// changeIndexRequest addresses one entry of the change form.
type changeIndexRequest struct {
	Index int `json:"index"`
}

// changeUpdateRequest is a partial edit of one change entry.
type changeUpdateRequest struct {
	Index     int     `json:"index"`
	FieldName *string `json:"fieldName"`
	NewValue  *string `json:"newValue"`
	Reason    *string `json:"reason"`
}

// changeSubmitRequest finalizes the request with the general reason.
type changeSubmitRequest struct {
	GeneralReason string `json:"generalReason"`
}

// AddChange appends an empty change entry.
func (ctl *ProfileController) AddChange(c *gin.Context) {
	form := currentSession(c).Stores.Auth.ChangeForm()
	form.AddField()
	jsonOK(c, form, "")
}

// RemoveChange deletes one change entry.
func (ctl *ProfileController) RemoveChange(c *gin.Context) {
	var req changeIndexRequest
	if err := bindJSON(c, &req); err != nil {
		handleActionError(c, err)
		return
	}
	form := currentSession(c).Stores.Auth.ChangeForm()
	form.RemoveField(req.Index)
	jsonOK(c, form, "")
}

// UpdateChange merges a partial edit into one change entry, repopulating the
// current value from the live profile when the field name changes.
func (ctl *ProfileController) UpdateChange(c *gin.Context) {
	var req changeUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		handleActionError(c, err)
		return
	}
	auth := currentSession(c).Stores.Auth
	patch := stores.ChangePatch{FieldName: req.FieldName, NewValue: req.NewValue, Reason: req.Reason}
	if err := auth.ChangeForm().UpdateField(req.Index, patch, auth.Profile()); err != nil {
		handleActionError(c, err)
		return
	}
	jsonOK(c, auth.ChangeForm(), "")
}

// SubmitChanges validates and submits the permission request.
func (ctl *ProfileController) SubmitChanges(c *gin.Context) {
	var req changeSubmitRequest
	if err := bindJSON(c, &req); err != nil {
		handleActionError(c, err)
		return
	}
	auth := currentSession(c).Stores.Auth
	auth.ChangeForm().GeneralReason = req.GeneralReason

	if err := auth.RequestUpdatePermission(c.Request.Context()); err != nil {
		handleActionError(c, err)
		return
	}
	jsonOK(c, nil, "change request submitted for review")
}
