package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/inventory"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/logger"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/security/validation"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/utils"
)

// InventoryHandler serves the self-contained inventory CRUD.
type InventoryHandler struct {
	repo *inventory.Repo
}

func NewInventoryHandler(repo *inventory.Repo) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list inventory", "error", err)
		utils.SendJSONError(w, "Failed to list inventory items", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, items, http.StatusOK)
}

func (h *InventoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	created, err := h.repo.Create(*item)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to create inventory item", "error", err)
		utils.SendJSONError(w, "Failed to create inventory item", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, created, http.StatusCreated)
}

func (h *InventoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid item id", http.StatusBadRequest)
		return
	}
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	item.ID = id

	updated, err := h.repo.Update(*item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.SendJSONError(w, "Inventory item not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Failed to update inventory item", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to update inventory item", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, updated, http.StatusOK)
}

func (h *InventoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid item id", http.StatusBadRequest)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.SendJSONError(w, "Inventory item not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Failed to delete inventory item", "id", id, "error", err)
		utils.SendJSONError(w, "Failed to delete inventory item", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

func (h *InventoryHandler) decodeItem(w http.ResponseWriter, r *http.Request) (*inventory.Item, bool) {
	var item inventory.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	item.Name = validation.SanitizeText(strings.TrimSpace(item.Name))
	item.Category = validation.SanitizeText(strings.TrimSpace(item.Category))
	item.Supplier = validation.SanitizeText(strings.TrimSpace(item.Supplier))
	if item.Name == "" {
		utils.SendJSONError(w, "Item name is required", http.StatusBadRequest)
		return nil, false
	}
	if item.Quantity < 0 || item.MinQuantity < 0 || item.UnitPrice < 0 {
		utils.SendJSONError(w, "Quantities and unit price cannot be negative", http.StatusBadRequest)
		return nil, false
	}
	return &item, true
}
