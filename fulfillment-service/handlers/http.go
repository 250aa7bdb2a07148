package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderflow/fulfillment-system/fulfillment-service/application"
	"github.com/orderflow/fulfillment-system/fulfillment-service/domain"
	"github.com/orderflow/fulfillment-system/shared/saga"
)

// FulfillmentHandlers contains fulfillment HTTP handlers. Besides the saga
// entry point it exposes every step as its own endpoint so an external
// orchestrator (or a test harness) can drive the steps individually; each step
// endpoint resolves to the {statusCode, body} step result shape.
type FulfillmentHandlers struct {
	fulfillOrder      *application.FulfillOrder
	getOrder          *application.GetOrder
	createOrder       *application.CreateOrder
	reserveInventory  *application.ReserveInventory
	releaseInventory  *application.ReleaseInventory
	debitPayment      *application.DebitPayment
	creditPayment     *application.CreditPayment
	updateOrderStatus *application.UpdateOrderStatus
}

// NewFulfillmentHandlers creates new fulfillment handlers
func NewFulfillmentHandlers(
	fulfillOrder *application.FulfillOrder,
	getOrder *application.GetOrder,
	createOrder *application.CreateOrder,
	reserveInventory *application.ReserveInventory,
	releaseInventory *application.ReleaseInventory,
	debitPayment *application.DebitPayment,
	creditPayment *application.CreditPayment,
	updateOrderStatus *application.UpdateOrderStatus,
) *FulfillmentHandlers {
	return &FulfillmentHandlers{
		fulfillOrder:      fulfillOrder,
		getOrder:          getOrder,
		createOrder:       createOrder,
		reserveInventory:  reserveInventory,
		releaseInventory:  releaseInventory,
		debitPayment:      debitPayment,
		creditPayment:     creditPayment,
		updateOrderStatus: updateOrderStatus,
	}
}

// FulfillOrder runs the whole saga for an intake payload
func (h *FulfillmentHandlers) FulfillOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.fulfillOrder.Execute(r.Context(), &cmd)
	if err != nil {
		writeJSON(w, saga.StatusCode(err), result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetOrder handles order retrieval requests
func (h *FulfillmentHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	order, err := h.getOrder.Execute(r.Context(), &application.GetOrderQuery{OrderID: orderID})
	if err != nil {
		if err == domain.ErrOrderNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// CreateOrder handles the create-order step
func (h *FulfillmentHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.createOrder.Execute(r.Context(), &cmd)
	writeStepResult(w, order, err)
}

// ReserveInventory handles the reserve-inventory step
func (h *FulfillmentHandlers) ReserveInventory(w http.ResponseWriter, r *http.Request) {
	var cmd application.ReserveInventoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.reserveInventory.Execute(r.Context(), &cmd)
	writeStepResult(w, order, err)
}

// ReleaseInventory handles the release-inventory compensation step
func (h *FulfillmentHandlers) ReleaseInventory(w http.ResponseWriter, r *http.Request) {
	var cmd application.ReleaseInventoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.releaseInventory.Execute(r.Context(), &cmd)
	writeStepResult(w, order, err)
}

// DebitPayment handles the debit-payment step
func (h *FulfillmentHandlers) DebitPayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.DebitPaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.debitPayment.Execute(r.Context(), &cmd)
	writeStepResult(w, order, err)
}

// CreditPayment handles the credit-payment compensation step
func (h *FulfillmentHandlers) CreditPayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreditPaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.creditPayment.Execute(r.Context(), &cmd)
	writeStepResult(w, order, err)
}

// UpdateOrderStatus handles the update-order-status step
func (h *FulfillmentHandlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var cmd application.UpdateOrderStatusCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.updateOrderStatus.Execute(r.Context(), &cmd)
	writeStepResult(w, order, err)
}

// RegisterRoutes registers fulfillment routes
func (h *FulfillmentHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.FulfillOrder)
		r.Get("/{id}", h.GetOrder)
	})

	r.Route("/steps", func(r chi.Router) {
		r.Post("/create-order", h.CreateOrder)
		r.Post("/reserve-inventory", h.ReserveInventory)
		r.Post("/release-inventory", h.ReleaseInventory)
		r.Post("/debit-payment", h.DebitPayment)
		r.Post("/credit-payment", h.CreditPayment)
		r.Post("/update-order-status", h.UpdateOrderStatus)
	})
}

func writeStepResult(w http.ResponseWriter, order *domain.Order, err error) {
	var result saga.StepResult
	if err != nil {
		result = saga.Fail(err)
	} else {
		result = saga.OK(order)
	}
	writeJSON(w, result.StatusCode, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
