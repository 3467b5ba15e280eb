/**
 * @description
 * This file sets up the HTTP router for the transaction-core service. It
 * defines the API endpoints, associates them with their handlers, and applies
 * middleware for logging, panic recovery, timeouts and the internal API key.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// EngineRoutes creates and returns a new router for the command engine.
func EngineRoutes(h *EngineHandlers, internalAPIKey string) http.Handler {
	r := chi.NewRouter()

	// Add standard middleware for logging, panic recovery, and timeouts.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	// Group routes that require the internal API key.
	r.Group(func(r chi.Router) {
		r.Use(InternalKeyMiddleware(internalAPIKey))

		r.Post("/seed", h.SeedHandler)
		r.Post("/commands", h.CommandsHandler)
		r.Post("/command", h.CommandHandler)
		r.Post("/reset", h.ResetHandler)
		r.Get("/users/{email}/transactions", h.TransactionsHandler)
		r.Get("/users/{email}/accounts", h.AccountsHandler)
	})

	return r
}
