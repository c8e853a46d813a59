package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/ragflow/store"
)

// MaterialLister lists a project's distinct documents.
type MaterialLister interface {
	ListMaterials(ctx context.Context, projectID string) ([]store.Material, error)
}

// MaterialsHandler serves GET /projects/{project}/materials.
type MaterialsHandler struct {
	lister MaterialLister
	logger *zap.Logger
}

// NewMaterialsHandler creates the materials handler.
func NewMaterialsHandler(lister MaterialLister, logger *zap.Logger) *MaterialsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialsHandler{
		lister: lister,
		logger: logger.With(zap.String("component", "materials_handler")),
	}
}

// List handles GET requests. The project is taken from the query string.
func (h *MaterialsHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID := strings.TrimSpace(r.URL.Query().Get("course_name"))
	if projectID == "" {
		WriteErrorMessage(w, http.StatusBadRequest, "INVALID_REQUEST", "course_name is required")
		return
	}

	materials, err := h.lister.ListMaterials(r.Context(), projectID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	if materials == nil {
		materials = []store.Material{}
	}
	WriteSuccess(w, materials)
}
