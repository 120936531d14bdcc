package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/admin222aman/LocalFixConnect/internal/api/handlers"
	"github.com/admin222aman/LocalFixConnect/internal/api/middleware"
	"github.com/admin222aman/LocalFixConnect/internal/infrastructure/observability"
)

// HealthPinger reports backend connectivity for the health endpoint.
// The volatile backend has nothing to probe and passes nil.
type HealthPinger interface {
	Ping(ctx context.Context) error
}

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	usersHandler      *handlers.UsersHandler
	categoriesHandler *handlers.CategoriesHandler
	providersHandler  *handlers.ProvidersHandler
	bookingsHandler   *handlers.BookingsHandler
	reviewsHandler    *handlers.ReviewsHandler

	pinger  HealthPinger
	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	usersHandler *handlers.UsersHandler,
	categoriesHandler *handlers.CategoriesHandler,
	providersHandler *handlers.ProvidersHandler,
	bookingsHandler *handlers.BookingsHandler,
	reviewsHandler *handlers.ReviewsHandler,
	pinger HealthPinger,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		usersHandler:      usersHandler,
		categoriesHandler: categoriesHandler,
		providersHandler:  providersHandler,
		bookingsHandler:   bookingsHandler,
		reviewsHandler:    reviewsHandler,
		pinger:            pinger,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", r.handleHealth)

	// User endpoints
	r.mux.HandleFunc("POST /api/users", r.usersHandler.CreateUser)
	r.mux.HandleFunc("GET /api/users", r.usersHandler.ListUsers)
	r.mux.HandleFunc("GET /api/users/{id}", r.usersHandler.GetUser)
	r.mux.HandleFunc("PATCH /api/users/{id}", r.usersHandler.UpdateUser)
	r.mux.HandleFunc("GET /api/users/{userId}/provider", r.providersHandler.GetProviderByUser)

	// Service category endpoints
	r.mux.HandleFunc("GET /api/categories", r.categoriesHandler.ListCategories)
	r.mux.HandleFunc("POST /api/categories", r.categoriesHandler.CreateCategory)
	r.mux.HandleFunc("GET /api/categories/{id}", r.categoriesHandler.GetCategory)
	r.mux.HandleFunc("PATCH /api/categories/{id}", r.categoriesHandler.UpdateCategory)

	// Provider endpoints
	r.mux.HandleFunc("GET /api/providers", r.providersHandler.ListProviders)
	r.mux.HandleFunc("POST /api/providers", r.providersHandler.CreateProvider)
	r.mux.HandleFunc("GET /api/providers/{id}", r.providersHandler.GetProvider)
	r.mux.HandleFunc("PATCH /api/providers/{id}", r.providersHandler.UpdateProvider)
	r.mux.HandleFunc("GET /api/providers/{id}/categories", r.providersHandler.ListProviderCategories)
	r.mux.HandleFunc("POST /api/providers/{id}/categories", r.providersHandler.CreateProviderCategory)
	r.mux.HandleFunc("GET /api/providers/{id}/reviews", r.providersHandler.ListProviderReviews)

	// Booking endpoints
	r.mux.HandleFunc("GET /api/bookings", r.bookingsHandler.ListBookings)
	r.mux.HandleFunc("POST /api/bookings", r.bookingsHandler.CreateBooking)
	r.mux.HandleFunc("GET /api/bookings/{id}", r.bookingsHandler.GetBooking)
	r.mux.HandleFunc("PATCH /api/bookings/{id}", r.bookingsHandler.UpdateBooking)

	// Review endpoints
	r.mux.HandleFunc("POST /api/reviews", r.reviewsHandler.CreateReview)
	r.mux.HandleFunc("PATCH /api/reviews/{id}", r.reviewsHandler.UpdateReview)
	r.mux.HandleFunc("DELETE /api/reviews/{id}", r.reviewsHandler.DeleteReview)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if r.pinger != nil {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := r.pinger.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, err := w.Write([]byte("database unreachable")); err != nil {
				return
			}
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		return
	}
}
