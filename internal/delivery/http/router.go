package http

import (
	"log/slog"
	"net/http"

	"meetinggate/internal/delivery/http/controllers"
	"meetinggate/internal/delivery/http/middleware"
	"meetinggate/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, authController *controllers.AuthController, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	optionalAuth := middleware.OptionalAuth(verifier, logger)

	// Events
	mux.HandleFunc("GET /api/event/details/{roomId}", eventController.GetDetails)
	mux.HandleFunc("GET /api/event/meta", optionalAuth(eventController.GetMeta))

	// Auth
	mux.HandleFunc("POST /api/auth/login", authController.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with CORS and request logging.
func NewHandler(mux http.Handler, allowedOrigins []string, logger *slog.Logger) http.Handler {
	return middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux))
}
