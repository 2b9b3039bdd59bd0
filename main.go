// main.go
package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"go-pizzeria/config"
	"go-pizzeria/controllers"
	"go-pizzeria/middleware"
	"go-pizzeria/routes"
	"go-pizzeria/storage"
	"go-pizzeria/utils"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 1 * time.Minute
)

func main() {
	cfg := config.Load()

	// Set the process-wide hashing secret
	utils.HashingSecret = []byte(cfg.HashingSecret)

	// The record store keeps one JSON file per entity under the data dir
	store := storage.NewFileStore(afero.NewOsFs(), cfg.DataDir)

	emailService := utils.NewEmailService(cfg.SendGridAPIKey, cfg.EmailSender)
	paymentClient := utils.NewPaymentClient(cfg.StripeURL, cfg.StripeAPIKey)

	// Initialize controllers
	tokenController := controllers.NewTokenController(store)
	userController := controllers.NewUserController(store, tokenController, emailService)
	menuController := controllers.NewMenuController(store)
	cartController := controllers.NewCartController(store, tokenController)
	orderController := controllers.NewOrderController(store, paymentClient, emailService)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, tokenController, menuController, cartController, orderController)
	router.Use(middleware.RequestLogger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	logrus.Printf("server is running on port %s", cfg.Port)
	logrus.Fatal(server.ListenAndServe())
}
