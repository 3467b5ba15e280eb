/**
 * @description
 * This file contains the HTTP handlers for the transaction-core API. Handlers
 * parse incoming requests, call the command engine, and write the HTTP
 * response. The main surface is command replay: an ordered batch of commands
 * is processed strictly in submission order and the non-silent results come
 * back as an ordered array.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - github.com/go-chi/chi/v5: URL parameter extraction.
 * - internal/app, internal/domain: Engine and models.
 */

package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vaultbank/transaction-core/internal/app"
	"github.com/vaultbank/transaction-core/internal/domain"
)

// EngineHandlers holds the command engine the handlers drive.
type EngineHandlers struct {
	service *app.Service
}

// NewEngineHandlers creates a new instance of EngineHandlers.
func NewEngineHandlers(service *app.Service) *EngineHandlers {
	return &EngineHandlers{service: service}
}

// seedRequest is the bootstrap payload: users, merchants and exchange rates
// registered before any command runs.
type seedRequest struct {
	Users     []domain.User     `json:"users"`
	Merchants []domain.Merchant `json:"merchants"`
	Rates     []seedRate        `json:"exchange_rates"`
}

type seedRate struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

// SeedHandler registers users, merchants and exchange rates. Duplicate
// entries are rejected with a 409.
func (h *EngineHandlers) SeedHandler(w http.ResponseWriter, r *http.Request) {
	var req seedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	for _, u := range req.Users {
		if err := h.service.SeedUser(u); err != nil {
			h.writeError(w, http.StatusConflict, "User already exists: "+u.Email)
			return
		}
	}
	for _, m := range req.Merchants {
		if err := h.service.SeedMerchant(m); err != nil {
			h.writeError(w, http.StatusConflict, "Merchant already exists: "+m.Name)
			return
		}
	}
	for _, rate := range req.Rates {
		h.service.SeedRate(rate.From, rate.To, rate.Rate)
	}

	h.writeJSON(w, http.StatusCreated, map[string]int{
		"users":          len(req.Users),
		"merchants":      len(req.Merchants),
		"exchange_rates": len(req.Rates),
	})
}

// CommandsHandler replays an ordered batch of commands. Commands are
// processed one at a time to completion, in the submission order of the
// array; the response carries the non-silent results in the same order.
func (h *EngineHandlers) CommandsHandler(w http.ResponseWriter, r *http.Request) {
	var commands []domain.Command
	if err := json.NewDecoder(r.Body).Decode(&commands); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results := make([]*domain.Result, 0, len(commands))
	for _, cmd := range commands {
		if result := h.service.Process(r.Context(), cmd); result != nil {
			results = append(results, result)
		}
	}

	log.Printf("level=info component=api msg=\"command batch processed\" commands=%d results=%d", len(commands), len(results))
	h.writeJSON(w, http.StatusOK, results)
}

// CommandHandler processes a single command.
func (h *EngineHandlers) CommandHandler(w http.ResponseWriter, r *http.Request) {
	var cmd domain.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.service.Process(r.Context(), cmd)
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// ResetHandler discards cashback state, pending split payments and the
// identifier sequence ahead of a new replay batch.
func (h *EngineHandlers) ResetHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed int64 `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Seed <= 0 {
		req.Seed = 1
	}
	h.service.Reset(req.Seed)
	w.WriteHeader(http.StatusNoContent)
}

// TransactionsHandler returns a user's transaction log in append order.
func (h *EngineHandlers) TransactionsHandler(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	result := h.service.Process(r.Context(), domain.Command{
		Name:  "printTransactions",
		Email: email,
	})
	if result == nil {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.writeJSON(w, http.StatusOK, result.Output)
}

func (h *EngineHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (h *EngineHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
