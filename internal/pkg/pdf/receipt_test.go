package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptFileName(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		year      string
		paymentID string
		want      string
	}{
		{
			name:      "long payment id keeps last eight characters",
			kind:      "course-fee",
			year:      "2024-2025",
			paymentID: "pay_29QQoUBi66xm2abcd1234",
			want:      "course-fee-receipt-2024-2025-abcd1234.pdf",
		},
		{
			name:      "hostel kind",
			kind:      "hostel-fee",
			year:      "2023-2024",
			paymentID: "pay_000011112222",
			want:      "hostel-fee-receipt-2023-2024-11112222.pdf",
		},
		{
			name:      "short payment id used whole",
			kind:      "course-fee",
			year:      "2024-2025",
			paymentID: "p1",
			want:      "course-fee-receipt-2024-2025-p1.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReceiptFileName(tt.kind, tt.year, tt.paymentID))
		})
	}
}

func TestReceiptRendering(t *testing.T) {
	inv := Invoice{
		University:   "Campus Gate University",
		PaymentID:    "pay_123",
		OrderID:      "order_456",
		AcademicYear: "2024-2025",
		PaidAt:       "2025-07-01",
		StudentName:  "Asha Rao",
		RollNumber:   "CS2024017",
		CourseName:   "B.Tech Computer Science",
		Lines: []InvoiceLine{
			{Label: "Tuition Fee", Amount: 95000},
			{Label: "Lab Fee", Amount: 5000},
		},
		Total: 100000,
	}

	for name, render := range map[string]func(Invoice) ([]byte, error){
		"hostel":    HostelReceipt,
		"coursefee": CourseFeeReceipt,
	} {
		t.Run(name, func(t *testing.T) {
			out, err := render(inv)
			require.NoError(t, err)
			require.NotEmpty(t, out)
			assert.Equal(t, "%PDF", string(out[:4]))
		})
	}
}
