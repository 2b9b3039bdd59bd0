package controllers

import (
	"net/http"

	"go-pizzeria/storage"
	"go-pizzeria/utils"
)

// OrderController reserves the order endpoints. Order processing is not
// implemented yet; placing an order will eventually read the cart, charge
// the payment gateway, and mail a receipt.
type OrderController struct {
	Store    *storage.FileStore
	Payments *utils.PaymentClient
	Email    *utils.EmailService
}

func NewOrderController(store *storage.FileStore, payments *utils.PaymentClient, email *utils.EmailService) *OrderController {
	return &OrderController{Store: store, Payments: payments, Email: email}
}

func (oc *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	oc.notImplemented(w)
}

func (oc *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	oc.notImplemented(w)
}

func (oc *OrderController) notImplemented(w http.ResponseWriter) {
	utils.JSON(w, http.StatusNotImplemented, map[string]string{"error": "order processing is not implemented"})
}
