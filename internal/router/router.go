// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"autoparts-api/internal/handler"
	"autoparts-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handlers struct {
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Callback *handler.CallbackHandler
	Product  *handler.ProductHandler
}

func New(h Handlers, auth *middleware.AuthMiddleware, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.Product.HandleListProducts)

		// The provider posts payment results here, so no auth.
		r.Post("/mpesa/callback", h.Callback.HandleSTKCallback)

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Post("/products", h.Product.HandleCreateProduct)
			r.Post("/orders", h.Order.HandlePlaceOrder)
			r.Get("/orders/{userId}", h.Order.HandleListUserOrders)
			r.Post("/mpesa/stkpush", h.Payment.HandleSTKPush)
		})
	})

	return r
}
