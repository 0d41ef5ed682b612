package http

import (
	"net/http"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

// ToolHandler serves tool listing, lookup, and search
type ToolHandler struct {
	toolSvc service.ToolService
}

func NewToolHandler(toolSvc service.ToolService) *ToolHandler {
	return &ToolHandler{toolSvc: toolSvc}
}

func (h *ToolHandler) AddTool(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	var tool domain.Tool
	if !decodeBody(w, r, &tool) {
		return
	}
	tool.OwnerID = ownerID

	if err := h.toolSvc.AddTool(r.Context(), &tool); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tool)
}

type toolResponse struct {
	Tool         *domain.Tool              `json:"tool"`
	Availability []domain.ToolAvailability `json:"availability"`
}

func (h *ToolHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid tool id"})
		return
	}

	tool, availability, err := h.toolSvc.GetTool(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toolResponse{Tool: tool, Availability: availability})
}

func (h *ToolHandler) ListMyTools(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	tools, err := h.toolSvc.ListMyTools(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tools)
}

func (h *ToolHandler) SearchTools(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tools, err := h.toolSvc.SearchTools(r.Context(), q.Get("query"), q.Get("category"), q.Get("metro"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tools)
}
