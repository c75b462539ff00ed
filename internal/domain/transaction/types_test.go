//go:build unit

package transaction_test

import (
	"testing"

	"clubcore/internal/domain/transaction"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeForGatewayStatus(t *testing.T) {
	cases := []struct {
		status  string
		outcome transaction.SettlementOutcome
	}{
		{transaction.GatewayStatusApproved, transaction.OutcomeApprove},
		{transaction.GatewayStatusDeclined, transaction.OutcomeFail},
		{transaction.GatewayStatusError, transaction.OutcomeFail},
		{transaction.GatewayStatusVoided, transaction.OutcomeFail},
		{"PENDING", transaction.OutcomeUnknown},
		{"approved", transaction.OutcomeUnknown},
		{"", transaction.OutcomeUnknown},
	}

	for _, c := range cases {
		t.Run("status "+c.status, func(t *testing.T) {
			assert.Equal(t, c.outcome, transaction.OutcomeForGatewayStatus(c.status))
		})
	}
}

func TestStatusIsSettled(t *testing.T) {
	assert.False(t, transaction.StatusPendingPayment.IsSettled())
	assert.True(t, transaction.StatusCompleted.IsSettled())
	assert.True(t, transaction.StatusFailed.IsSettled())
}

func TestNewKind(t *testing.T) {
	kind, err := transaction.NewKind("order")
	assert.NoError(t, err)
	assert.Equal(t, transaction.KindOrder, kind)

	kind, err = transaction.NewKind("registration")
	assert.NoError(t, err)
	assert.Equal(t, transaction.KindRegistration, kind)

	_, err = transaction.NewKind("subscription")
	assert.ErrorIs(t, err, transaction.ErrInvalidKind)
}
