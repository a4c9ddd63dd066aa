package insurance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/insurance-admin/generic"
)

func TestPaymentPatch_Apply(t *testing.T) {
	// GIVEN: A seeded pending payment
	cur := SeedPayments()[2]
	require.Equal(t, PaymentPending, cur.Status)

	// WHEN: Patching status and amount only
	patch, err := DecodePaymentPatch([]byte(`{"status":"completed","amount":1100,"id":99,"paymentId":"PAY-1"}`))
	require.NoError(t, err)
	next, err := patch.Apply(cur)

	// THEN: Only the patched fields change; identity is untouched
	require.NoError(t, err)
	assert.Equal(t, PaymentCompleted, next.Status)
	assert.True(t, next.Amount.Equal(decimal.NewFromInt(1100)))
	assert.Equal(t, cur.ID, next.ID)
	assert.Equal(t, cur.PaymentID, next.PaymentID)
	assert.Equal(t, cur.ReferenceNumber, next.ReferenceNumber)
	assert.Equal(t, cur.Method, next.Method)
	assert.Equal(t, cur.Customer, next.Customer)
}

func TestPaymentPatch_AnyStatusToAnyStatus(t *testing.T) {
	cur := SeedPayments()[4] // failed
	patch, err := DecodePaymentPatch([]byte(`{"status":"pending"}`))
	require.NoError(t, err)

	next, err := patch.Apply(cur)
	require.NoError(t, err)
	assert.Equal(t, PaymentPending, next.Status)
}

func TestPaymentPatch_Invalid(t *testing.T) {
	cur := SeedPayments()[0]

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"bogus status", `{"status":"bogus"}`, "Invalid payment status: bogus"},
		{"bogus method", `{"method":"cash"}`, "Invalid payment method: cash"},
		{"bad date", `{"date":"tomorrow"}`, "Invalid date for field date: tomorrow (use YYYY-MM-DD)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := DecodePaymentPatch([]byte(tt.body))
			require.NoError(t, err)

			next, err := patch.Apply(cur)
			require.Error(t, err)
			assert.True(t, generic.IsClientError(err))
			assert.Equal(t, tt.msg, err.Error())
			assert.Equal(t, cur, next)
		})
	}
}

func TestPaymentPatch_EmptyEnumsAreIgnored(t *testing.T) {
	cur := SeedPayments()[0]
	patch, err := DecodePaymentPatch([]byte(`{"status":"","method":""}`))
	require.NoError(t, err)

	next, err := patch.Apply(cur)
	require.NoError(t, err)
	assert.Equal(t, cur.Status, next.Status)
	assert.Equal(t, cur.Method, next.Method)
}

func TestDecodePaymentPatch_NotAnObject(t *testing.T) {
	_, err := DecodePaymentPatch([]byte(`"status"`))
	assert.True(t, generic.IsClientError(err))
}
