// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"restaurant-api/controllers"
	"restaurant-api/middleware"
	"restaurant-api/store"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, users store.UserStore,
	menuController *controllers.MenuController,
	cartController *controllers.CartController,
	userController *controllers.UserController,
	paymentController *controllers.PaymentController,
	statsController *controllers.StatsController) {

	verifyAdmin := middleware.VerifyAdmin(users)
	tokenOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.VerifyToken(h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.VerifyToken(verifyAdmin(h))
	}

	// Menu routes
	router.HandleFunc("/menu", menuController.GetMenu).Methods("GET")
	router.Handle("/menu", adminOnly(menuController.CreateMenuItem)).Methods("POST")
	router.HandleFunc("/menu/{id}", menuController.GetMenuItem).Methods("GET")
	router.Handle("/menu/{id}", adminOnly(menuController.UpdateMenuItem)).Methods("PATCH")
	router.Handle("/menu/{id}", adminOnly(menuController.DeleteMenuItem)).Methods("DELETE")

	// Token issuing
	router.HandleFunc("/jwt", userController.IssueToken).Methods("POST")

	// Cart routes (public; the cart fills before login)
	router.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	router.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	router.HandleFunc("/cart/{id}", cartController.RemoveFromCart).Methods("DELETE")

	// User routes
	router.HandleFunc("/users", userController.Register).Methods("POST")
	router.Handle("/users", adminOnly(userController.ListUsers)).Methods("GET")
	router.Handle("/user/admin/{email}", tokenOnly(userController.CheckAdmin)).Methods("GET")
	router.Handle("/users/admin/{id}", adminOnly(userController.PromoteToAdmin)).Methods("PATCH")
	router.Handle("/users/{id}", adminOnly(userController.DeleteUser)).Methods("DELETE")

	// Payment routes
	router.HandleFunc("/create-payment-intent", paymentController.CreatePaymentIntent).Methods("POST")
	router.Handle("/payment", tokenOnly(paymentController.RecordPayment)).Methods("POST")
	router.Handle("/paymentHistory/{email}", tokenOnly(paymentController.PaymentHistory)).Methods("GET")

	// Stats routes
	router.Handle("/stats", adminOnly(statsController.GetStats)).Methods("GET")
	router.Handle("/order-stats", adminOnly(statsController.GetOrderStats)).Methods("GET")
}
