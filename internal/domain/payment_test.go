package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentDraft_Validate(t *testing.T) {
	valid := PaymentDraft{
		Amount:   decimal.NewFromInt(100),
		Receiver: "acme corp",
		Status:   StatusSuccess,
		Method:   MethodCard,
		OwnerID:  1,
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.NoError(t, zeroAmount.Validate())

	negativeAmount := valid
	negativeAmount.Amount = decimal.NewFromInt(-5)
	assert.ErrorIs(t, negativeAmount.Validate(), ErrInvalidAmount)

	noReceiver := valid
	noReceiver.Receiver = ""
	assert.ErrorIs(t, noReceiver.Validate(), ErrEmptyReceiver)

	badStatus := valid
	badStatus.Status = "refunded"
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidStatus)

	badMethod := valid
	badMethod.Method = "cheque"
	assert.ErrorIs(t, badMethod.Validate(), ErrInvalidMethod)
}

func TestPaymentStatus_IsValid(t *testing.T) {
	for _, s := range []PaymentStatus{StatusSuccess, StatusFailed, StatusPending} {
		assert.True(t, s.IsValid(), "status %s", s)
	}
	assert.False(t, PaymentStatus("").IsValid())
	assert.False(t, PaymentStatus("declined").IsValid())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	for _, m := range []PaymentMethod{MethodCard, MethodUPI, MethodNetbanking, MethodCash} {
		assert.True(t, m.IsValid(), "method %s", m)
	}
	assert.False(t, PaymentMethod("wire").IsValid())
}
