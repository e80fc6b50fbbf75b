// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/request"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api/response"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/validation"
)

// ValidateCityParam validates that the city URL parameter is present and acceptable.
// Returns 400 Bad Request if the city is missing or too long.
//
// Example usage in router:
//
//	r.Route("/{city}", func(r chi.Router) {
//	    r.Use(middleware.ValidateCityParam)
//	    r.Get("/series", handler.Series)
//	})
func ValidateCityParam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := validation.ValidateCity(request.PathParam(r, "city")); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid city", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ValidateYearParam validates that the year URL parameter is an integer in range.
// Returns 400 Bad Request otherwise.
func ValidateYearParam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := validation.ParseYear(request.PathParam(r, "year")); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid year", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
