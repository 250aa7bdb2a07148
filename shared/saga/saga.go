// Package saga defines the contracts every fulfillment step and compensator
// must honor: step/compensation naming, execution status tracking, the failure
// taxonomy, and the normalized result shape handed back to whatever
// orchestrator drives the workflow.
package saga

import "time"

// SagaStatus represents the current status of a saga execution
type SagaStatus string

const (
	SagaStatusStarted     SagaStatus = "started"
	SagaStatusInProgress  SagaStatus = "in_progress"
	SagaStatusCompleted   SagaStatus = "completed"
	SagaStatusFailed      SagaStatus = "failed"
	SagaStatusCompensated SagaStatus = "compensated"
)

// Terminal reports whether no further transitions are allowed
func (s SagaStatus) Terminal() bool {
	return s == SagaStatusCompleted || s == SagaStatusFailed || s == SagaStatusCompensated
}

// StepStatus represents the status of a single step within an execution
type StepStatus string

const (
	StepStatusPending     StepStatus = "pending"
	StepStatusCompleted   StepStatus = "completed"
	StepStatusFailed      StepStatus = "failed"
	StepStatusCompensated StepStatus = "compensated"
)

// Step names shared by the use cases, the fault injector and the HTTP layer
const (
	StepCreateOrder       = "create_order"
	StepReserveInventory  = "reserve_inventory"
	StepReleaseInventory  = "release_inventory"
	StepDebitPayment      = "debit_payment"
	StepCreditPayment     = "credit_payment"
	StepUpdateOrderStatus = "update_order_status"
)

// StepRecord captures the outcome of one step attempt within an execution
type StepRecord struct {
	Name       string     `json:"name"`
	Status     StepStatus `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

// Execution is the per-saga-instance trail the runner reports to its caller
type Execution struct {
	OrderID   string       `json:"order_id"`
	Status    SagaStatus   `json:"status"`
	Steps     []StepRecord `json:"steps"`
	StartedAt time.Time    `json:"started_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
