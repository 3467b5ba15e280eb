/**
 * @description
 * This file contains the read-side handler for a user's accounts. It exposes
 * the ledger's per-owner account listing so downstream services can render
 * balances without replaying the transaction log.
 */

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AccountsHandler returns a user's accounts in creation order.
func (h *EngineHandlers) AccountsHandler(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	accounts, err := h.service.AccountsForUser(email)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.writeJSON(w, http.StatusOK, accounts)
}
