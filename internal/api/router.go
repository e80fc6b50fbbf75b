package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/middleware"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/config"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/service"
)

// Services groups the services the router dispatches to.
type Services struct {
	System   *service.SystemService
	Price    *service.PriceService
	Forecast *service.ForecastService
	Transfer *service.TransferService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(svcs.System)
	cityHandler := handlers.NewCityHandler(svcs.Price, svcs.Forecast)
	transferHandler := handlers.NewTransferHandler(svcs.Transfer)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/city", func(r chi.Router) {
			r.Get("/", cityHandler.ListCities)
			r.Post("/", cityHandler.AddCity)

			r.Route("/{city}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateCityParam)
				r.Delete("/", cityHandler.DeleteCity)
				r.Get("/series", cityHandler.Series)
				r.Get("/info", cityHandler.Info)
				r.Get("/forecast", cityHandler.Forecast)

				r.With(custommiddleware.ValidateYearParam).Put("/price/{year}", cityHandler.UpsertPrice)
			})
		})

		r.Post("/import", transferHandler.Import)
		r.Get("/export", transferHandler.Export)
	})

	return r
}
