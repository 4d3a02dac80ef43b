package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Arman2205/Knowledge_Network/internal/models"
	"github.com/Arman2205/Knowledge_Network/internal/services"
	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/Arman2205/Knowledge_Network/pkg/logger"
	"github.com/gorilla/mux"
)

// KnowledgeHandler manages HTTP endpoints for knowledge items.
type KnowledgeHandler struct {
	Service *services.KnowledgeService
}

// NewKnowledgeHandler initializes a new KnowledgeHandler.
func NewKnowledgeHandler(service *services.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{Service: service}
}

// GetAllKnowledgesHandler returns every knowledge item.
func (h *KnowledgeHandler) GetAllKnowledgesHandler(w http.ResponseWriter, r *http.Request) {
	knowledges, err := h.Service.GetAllKnowledges(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch knowledges")
		httperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(knowledges)
}

// GetKnowledgeHandler returns a single knowledge by its route id.
func (h *KnowledgeHandler) GetKnowledgeHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	knowledge, err := h.Service.GetKnowledge(r.Context(), id)
	if err != nil {
		logger.Log.WithField("knowledge_id", id).WithError(err).Warn("Failed to fetch knowledge")
		httperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(knowledge)
}

// CreateKnowledgeHandler creates a knowledge owned by the authenticated user.
func (h *KnowledgeHandler) CreateKnowledgeHandler(w http.ResponseWriter, r *http.Request) {
	var knowledge models.Knowledge
	if err := json.NewDecoder(r.Body).Decode(&knowledge); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode knowledge payload")
		httperror.Write(w, httperror.NewBadRequest("invalid request payload"))
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateKnowledge(r.Context(), authenticatedID(r), &knowledge)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to create knowledge")
		httperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// UpdateKnowledgeHandler patches a knowledge. Ownership is enforced by the
// middleware on the route.
func (h *KnowledgeHandler) UpdateKnowledgeHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.KnowledgePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode knowledge update")
		httperror.Write(w, httperror.NewBadRequest("invalid request payload"))
		return
	}
	defer r.Body.Close()

	knowledge, err := h.Service.UpdateKnowledge(r.Context(), id, &patch)
	if err != nil {
		logger.Log.WithField("knowledge_id", id).WithError(err).Warn("Failed to update knowledge")
		httperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(knowledge)
}

// DeleteKnowledgeHandler removes a knowledge. Ownership is enforced by the
// middleware on the route.
func (h *KnowledgeHandler) DeleteKnowledgeHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.DeleteKnowledge(r.Context(), id); err != nil {
		logger.Log.WithField("knowledge_id", id).WithError(err).Warn("Failed to delete knowledge")
		httperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode([]models.Knowledge{})
}
