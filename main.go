// main.go
package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"restaurant-api/config"
	"restaurant-api/controllers"
	"restaurant-api/middleware"
	"restaurant-api/routes"
	"restaurant-api/store"
	"restaurant-api/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.AccessToken)

	// Connect to MongoDB
	ctx := context.Background()
	client, err := store.Connect(ctx, cfg.MongoURI())
	if err != nil {
		logrus.WithError(err).Fatal("connecting to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			logrus.WithError(err).Error("disconnecting from MongoDB")
		}
	}()

	db := store.NewMongo(client, cfg.DBName)

	// Initialize services
	emailService := utils.NewEmailService(cfg.SendGridAPIKey, cfg.EmailSender)
	stripeService := utils.NewStripeService(cfg.StripeSecretKey)

	// Initialize controllers
	menuController := controllers.NewMenuController(db.Menu)
	cartController := controllers.NewCartController(db.Cart)
	userController := controllers.NewUserController(db.Users)
	paymentController := controllers.NewPaymentController(db.Payments, stripeService, emailService)
	statsController := controllers.NewStatsController(db.Stats)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.CORS(cfg.GetCORSAllowedOrigins()))
	router.Use(middleware.Logger(logrus.StandardLogger()))

	// Liveness
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("restaurant server is running"))
	}).Methods("GET")

	// Register routes
	routes.RegisterRoutes(router, db.Users, menuController, cartController, userController, paymentController, statsController)

	// Start the server
	logrus.WithField("port", cfg.Port).Info("server is running")
	logrus.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
