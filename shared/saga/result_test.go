package saga

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error maps to 200",
			err:      nil,
			expected: http.StatusOK,
		},
		{
			name:     "validation failure maps to 400",
			err:      NewStepError(StepCreateOrder, FailureValidation, errors.New("empty order id")),
			expected: http.StatusBadRequest,
		},
		{
			name:     "simulated failure maps to 400",
			err:      Errorf(StepDebitPayment, FailureSimulated, "unable to process payment for order 21"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "not found maps to 404",
			err:      NewStepError(StepReleaseInventory, FailureNotFound, errors.New("transaction not found")),
			expected: http.StatusNotFound,
		},
		{
			name:     "write failure maps to 500",
			err:      NewStepError(StepReserveInventory, FailureWrite, errors.New("put item failed")),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "wrapped step error keeps its kind",
			err:      errors.Wrap(NewStepError(StepCreditPayment, FailureNotFound, errors.New("no debit")), "compensation"),
			expected: http.StatusNotFound,
		},
		{
			name:     "unclassified error defaults to 500",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, FailureWrite, KindOf(errors.New("raw storage error")))
}

func TestFail_BodyCarriesErrorMessage(t *testing.T) {
	err := NewStepError(StepUpdateOrderStatus, FailureNotFound, errors.New("order not found"))
	result := Fail(err)

	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	body, ok := result.Body.(errorBody)
	assert.True(t, ok)
	assert.Contains(t, body.Error, "order not found")
}

func TestSagaStatus_Terminal(t *testing.T) {
	assert.False(t, SagaStatusStarted.Terminal())
	assert.False(t, SagaStatusInProgress.Terminal())
	assert.True(t, SagaStatusCompleted.Terminal())
	assert.True(t, SagaStatusFailed.Terminal())
	assert.True(t, SagaStatusCompensated.Terminal())
}
