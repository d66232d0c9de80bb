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

// CourseFeesController handles the course-fees screen: status summary,
// yearwise structure, pending dues, payment and receipts.
type CourseFeesController struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewCourseFeesController creates a new course-fees controller.
func NewCourseFeesController(cfg *config.Config, logger zerolog.Logger) *CourseFeesController {
	return &CourseFeesController{
		cfg:    cfg,
		logger: logger.With().Str("controller", "coursefees").Logger(),
	}
}

// Show renders the course-fees screen with status, structure, pending and
// history tabs.
func (ctl *CourseFeesController) Show(c *gin.Context) {
	s := currentSession(c)
	fees := s.Stores.CourseFees
	ctx := c.Request.Context()

	_ = fees.FetchStatus(ctx)
	_ = fees.FetchStructure(ctx)
	_ = fees.FetchPending(ctx)
	_ = fees.FetchHistory(ctx)

	c.HTML(http.StatusOK, "fees.html", pageData(c, "fees", gin.H{
		"Status":    fees.Status(),
		"Structure": fees.Structure(),
		"Pending":   fees.Pending(),
		"History":   fees.History(),
		"Error":     fees.Err(),
		"Tab":       c.DefaultQuery("tab", "status"),
		"Notice":    c.Query("notice"),
	}))
}

// payRequest selects which fee record to pay.
type payRequest struct {
	FeeRecordID string `form:"feeRecordId" json:"feeRecordId"`
}

// Pay creates a gateway order for a fee record and opens the checkout page.
func (ctl *CourseFeesController) Pay(c *gin.Context) {
	var req payRequest
	_ = c.ShouldBind(&req)

	s := currentSession(c)
	fees := s.Stores.CourseFees
	profile := s.Stores.Auth.Profile()

	order, err := fees.CreateOrder(c.Request.Context(), req.FeeRecordID)
	if err != nil {
		c.HTML(http.StatusBadGateway, "fees.html", pageData(c, "fees", gin.H{
			"Status":    fees.Status(),
			"Structure": fees.Structure(),
			"Pending":   fees.Pending(),
			"History":   fees.History(),
			"Error":     messageOf(err, "failed to start payment"),
			"Tab":       "pending",
		}))
		return
	}

	cfg := payment.CheckoutConfig{
		KeyID:        ctl.cfg.Payment.KeyID,
		ScriptURL:    ctl.cfg.Payment.CheckoutScript,
		OrderID:      order.OrderID,
		Amount:       order.Amount,
		Currency:     order.Currency,
		Description:  "Course Fee",
		CallbackPath: "/fees/pay/callback",
		ReturnTab:    "/fees?tab=history",
	}
	if profile != nil {
		cfg.StudentName = profile.FullName
		cfg.StudentEmail = profile.Email
	}

	c.HTML(http.StatusOK, "checkout.html", pageData(c, "fees", gin.H{"Checkout": cfg}))
}

// PayCallback verifies the gateway's completion payload with the backend and
// polls the history until the payment is visible (bounded, no fixed sleep).
func (ctl *CourseFeesController) PayCallback(c *gin.Context) {
	var v payment.Verification
	if err := bindJSON(c, &v); err != nil {
		handleActionError(c, err)
		return
	}

	s := currentSession(c)
	fees := s.Stores.CourseFees

	if err := fees.VerifyPayment(c.Request.Context(), v); err != nil {
		handleActionError(c, err)
		return
	}

	settled, err := payment.WaitSettled(c.Request.Context(), func(ctx context.Context) (bool, error) {
		if err := fees.FetchHistory(ctx); err != nil {
			return false, err
		}
		return fees.HasPayment(v.PaymentID), nil
	})
	if err != nil {
		ctl.logger.Warn().Err(err).Str("paymentId", v.PaymentID).Msg("Post-payment refresh failed")
	}
	if !settled {
		ctl.logger.Info().Str("paymentId", v.PaymentID).Msg("Payment verified but not yet visible in history")
	}

	_ = fees.FetchStatus(c.Request.Context())
	jsonOK(c, gin.H{"redirect": "/fees?tab=history"}, "payment verified")
}

// Receipt streams the PDF receipt for one course-fee payment.
func (ctl *CourseFeesController) Receipt(c *gin.Context) {
	s := currentSession(c)
	fees := s.Stores.CourseFees
	paymentID := c.Param("paymentId")

	if fees.History() == nil {
		_ = fees.FetchHistory(c.Request.Context())
	}
	rec, ok := fees.Receipt(paymentID)
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", pageData(c, "fees", gin.H{
			"Message": "receipt not found",
		}))
		return
	}

	profile := s.Stores.Auth.Profile()
	course := s.Stores.Course.Course()

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
	if course != nil {
		inv.CourseName = course.Name
	}
	for _, line := range rec.FeeBreakdown {
		inv.Lines = append(inv.Lines, pdf.InvoiceLine{Label: line.Label, Amount: line.Amount})
	}
	if len(inv.Lines) == 0 {
		inv.Lines = []pdf.InvoiceLine{{Label: "Course Fee", Amount: rec.Amount}}
	}

	doc, err := pdf.CourseFeeReceipt(inv)
	if err != nil {
		ctl.logger.Error().Err(err).Str("paymentId", paymentID).Msg("Receipt rendering failed")
		c.HTML(http.StatusInternalServerError, "error.html", pageData(c, "fees", gin.H{
			"Message": "could not generate the receipt",
		}))
		return
	}

	name := pdf.ReceiptFileName("course-fee", rec.AcademicYear, rec.PaymentID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", doc)
}
