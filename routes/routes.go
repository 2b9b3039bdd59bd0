// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-pizzeria/controllers"
)

// RegisterRoutes builds the full route table at startup. Every operation
// is an explicit method-scoped registration; the router answers 404 for
// unknown paths and 405 for known paths with the wrong method.
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, tokenController *controllers.TokenController, menuController *controllers.MenuController, cartController *controllers.CartController, orderController *controllers.OrderController) {
	router.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("GET")

	// User routes
	router.HandleFunc("/users", userController.Register).Methods("POST")
	router.HandleFunc("/users", userController.Get).Methods("GET")
	router.HandleFunc("/users", userController.Update).Methods("PUT")
	router.HandleFunc("/users", userController.Delete).Methods("DELETE")

	// Token routes
	router.HandleFunc("/tokens", tokenController.Create).Methods("POST")
	router.HandleFunc("/tokens", tokenController.Get).Methods("GET")
	router.HandleFunc("/tokens", tokenController.Extend).Methods("PUT")
	router.HandleFunc("/tokens", tokenController.Delete).Methods("DELETE")

	// Menu routes
	router.HandleFunc("/menu", menuController.Create).Methods("POST")
	router.HandleFunc("/menu", menuController.Get).Methods("GET")
	router.HandleFunc("/menu", menuController.Update).Methods("PUT")
	router.HandleFunc("/menu", menuController.Delete).Methods("DELETE")

	// Cart routes
	router.HandleFunc("/carts", cartController.Get).Methods("GET")
	router.HandleFunc("/carts/items/add", cartController.AddItem).Methods("PUT")
	router.HandleFunc("/carts/items/update", cartController.UpdateItem).Methods("PUT")
	router.HandleFunc("/carts/items/remove", cartController.RemoveItem).Methods("PUT")
	router.HandleFunc("/carts/items/empty", cartController.Empty).Methods("PUT")

	// Order routes (reserved, not implemented)
	router.HandleFunc("/orders", orderController.Create).Methods("POST")
	router.HandleFunc("/orders", orderController.Get).Methods("GET")
}
