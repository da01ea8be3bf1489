package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventease/internal/delivery/http/controllers"
	"eventease/internal/delivery/http/middleware"
	"eventease/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	rsvpController *controllers.RSVPController,
	userController *controllers.UserController,
) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	adminOrStaff := middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff)

	// Auth
	mux.HandleFunc("POST /auth/register", authController.Register)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("POST /auth/logout", authController.Logout)
	mux.HandleFunc("GET /auth/me", auth(authController.Me))

	// Public event pages, no auth
	mux.HandleFunc("GET /public/events", eventController.ListPublic)
	mux.HandleFunc("GET /public/events/{eventID}", eventController.GetPublic)
	mux.HandleFunc("POST /public/events/{eventID}/rsvps", rsvpController.SubmitPublic)
	mux.HandleFunc("GET /public/events/{eventID}/rsvps/lookup", rsvpController.LookupPublic)

	// Event management
	mux.HandleFunc("POST /events", auth(eventController.Create))
	mux.HandleFunc("GET /events", auth(eventController.List))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.Get))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.Update))
	mux.HandleFunc("PATCH /events/{eventID}/status", auth(eventController.UpdateStatus))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.Delete))

	// Attendee management
	mux.HandleFunc("GET /events/{eventID}/rsvps", auth(rsvpController.ListForEvent))
	mux.HandleFunc("GET /events/{eventID}/rsvps/stats", auth(rsvpController.Stats))
	mux.HandleFunc("GET /events/{eventID}/rsvps/export", auth(rsvpController.Export))
	mux.HandleFunc("GET /events/{eventID}/report", auth(rsvpController.Report))
	mux.HandleFunc("PATCH /rsvps/{rsvpID}/status", auth(rsvpController.UpdateStatus))
	mux.HandleFunc("DELETE /rsvps/{rsvpID}", auth(rsvpController.Delete))

	// Admin user management
	mux.HandleFunc("GET /users", auth(adminOrStaff(userController.List)))
	mux.HandleFunc("POST /users", auth(adminOnly(userController.Create)))
	mux.HandleFunc("GET /users/stats", auth(adminOnly(userController.Stats)))
	mux.HandleFunc("GET /users/{userID}", auth(adminOnly(userController.Get)))
	mux.HandleFunc("PATCH /users/{userID}", auth(adminOnly(userController.Update)))
	mux.HandleFunc("DELETE /users/{userID}", auth(adminOnly(userController.Delete)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
