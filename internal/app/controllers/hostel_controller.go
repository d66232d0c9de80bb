package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/payment"
	"github.com/campusgate/student-portal/internal/config"
	"github.com/campusgate/student-portal/internal/pkg/pdf"
)

// HostelController handles the hostel screen: allocation status, fee
// payment, payment history and receipts.
type HostelController struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewHostelController creates a new hostel controller.
func NewHostelController(cfg *config.Config, logger zerolog.Logger) *HostelController {
	return &HostelController{
		cfg:    cfg,
		logger: logger.With().Str("controller", "hostel").Logger(),
	}
}

// Show renders the hostel screen with status and history tabs.
func (ctl *HostelController) Show(c *gin.Context) {
	s := currentSession(c)
	hostel := s.Stores.Hostel

	_ = hostel.FetchAllocation(c.Request.Context())
	_ = hostel.FetchHistory(c.Request.Context())

	c.HTML(http.StatusOK, "hostel.html", pageData(c, "hostel", gin.H{
		"Allocation": hostel.Allocation(),
		"History":    hostel.History(),
		"Error":      hostel.Err(),
		"Tab":        c.DefaultQuery("tab", "status"),
		"Notice":     c.Query("notice"),
	}))
}

// Pay opens the checkout page for the hostel fee. An unfinished order from a
// previous attempt is resumed instead of creating a duplicate.
func (ctl *HostelController) Pay(c *gin.Context) {
	s := currentSession(c)
	hostel := s.Stores.Hostel
	profile := s.Stores.Auth.Profile()

	cfg := payment.CheckoutConfig{
		KeyID:        ctl.cfg.Payment.KeyID,
		ScriptURL:    ctl.cfg.Payment.CheckoutScript,
		Description:  "Hostel Fee",
		CallbackPath: "/hostel/pay/callback",
		ReturnTab:    "/hostel?tab=history",
	}
	if profile != nil {
		cfg.StudentName = profile.FullName
		cfg.StudentEmail = profile.Email
	}

	if pending, err := hostel.CheckPending(c.Request.Context()); err == nil && pending != nil {
		cfg.OrderID = pending.OrderID
		cfg.Amount = pending.Amount
		cfg.Currency = pending.Currency
	} else {
		order, err := hostel.CreateOrder(c.Request.Context())
		if err != nil {
			c.HTML(http.StatusBadGateway, "hostel.html", pageData(c, "hostel", gin.H{
				"Allocation": hostel.Allocation(),
				"History":    hostel.History(),
				"Error":      messageOf(err, "failed to start payment"),
				"Tab":        "status",
			}))
			return
		}
		cfg.OrderID = order.OrderID
		cfg.Amount = order.Amount
		cfg.Currency = order.Currency
	}

	c.HTML(http.StatusOK, "checkout.html", pageData(c, "hostel", gin.H{"Checkout": cfg}))
}

// PayCallback receives the gateway's signed completion payload, forwards it
// to the backend for verification, then waits (bounded polling, not a fixed
// sleep) until the payment shows up in the history before pointing the page
// at the history tab.
func (ctl *HostelController) PayCallback(c *gin.Context) {
	var v payment.Verification
	if err := bindJSON(c, &v); err != nil {
		handleActionError(c, err)
		return
	}

	s := currentSession(c)
	hostel := s.Stores.Hostel

	if err := hostel.VerifyPayment(c.Request.Context(), v); err != nil {
		// No retry affordance: the charge may already be through.
		handleActionError(c, err)
		return
	}

	settled, err := payment.WaitSettled(c.Request.Context(), func(ctx context.Context) (bool, error) {
		if err := hostel.FetchHistory(ctx); err != nil {
			return false, err
		}
		return hostel.HasPayment(v.PaymentID), nil
	})
	if err != nil {
		ctl.logger.Warn().Err(err).Str("paymentId", v.PaymentID).Msg("Post-payment refresh failed")
	}
	if !settled {
		ctl.logger.Info().Str("paymentId", v.PaymentID).Msg("Payment verified but not yet visible in history")
	}

	_ = hostel.FetchAllocation(c.Request.Context())
	jsonOK(c, gin.H{"redirect": "/hostel?tab=history"}, "payment verified")
}

// Receipt streams the PDF receipt for one hostel fee payment.
func (ctl *HostelController) Receipt(c *gin.Context) {
	s := currentSession(c)
	hostel := s.Stores.Hostel
	paymentID := c.Param("paymentId")

	if hostel.History() == nil {
		_ = hostel.FetchHistory(c.Request.Context())
	}
	rec, ok := hostel.Receipt(paymentID)
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", pageData(c, "hostel", gin.H{
			"Message": "receipt not found",
		}))
		return
	}

	profile := s.Stores.Auth.Profile()
	inv := pdf.Invoice{
		University:   "Campus Gate University",
		PaymentID:    rec.PaymentID,
		OrderID:      rec.OrderID,
		AcademicYear: rec.AcademicYear,
		PaidAt:       rec.PaidAt,
		Total:        rec.Amount,
	}
	if profile != nil {
		inv.StudentName = profile.FullName
		inv.RollNumber = profile.RollNumber
	}
	for _, line := range rec.FeeBreakdown {
		inv.Lines = append(inv.Lines, pdf.InvoiceLine{Label: line.Label, Amount: line.Amount})
	}
	if len(inv.Lines) == 0 {
		inv.Lines = []pdf.InvoiceLine{{Label: "Hostel Fee", Amount: rec.Amount}}
	}

	doc, err := pdf.HostelReceipt(inv)
	if err != nil {
		ctl.logger.Error().Err(err).Str("paymentId", paymentID).Msg("Receipt rendering failed")
		c.HTML(http.StatusInternalServerError, "error.html", pageData(c, "hostel", gin.H{
			"Message": "could not generate the receipt",
		}))
		return
	}

	name := pdf.ReceiptFileName("hostel-fee", rec.AcademicYear, rec.PaymentID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", doc)
}
