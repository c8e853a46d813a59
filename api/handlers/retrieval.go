package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/ragflow/retrieval"
)

// Retriever is the orchestrator surface the handler depends on.
type Retriever interface {
	Retrieve(ctx context.Context, q retrieval.Query) ([]retrieval.ContextItem, error)
}

// RetrievalHandler serves POST /getTopContexts.
type RetrievalHandler struct {
	retriever Retriever
	logger    *zap.Logger
}

// NewRetrievalHandler creates the retrieval handler.
func NewRetrievalHandler(retriever Retriever, logger *zap.Logger) *RetrievalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetrievalHandler{
		retriever: retriever,
		logger:    logger.With(zap.String("component", "retrieval_handler")),
	}
}

type retrievalRequest struct {
	SearchQuery string   `json:"search_query"`
	CourseName  string   `json:"course_name"`
	DocGroups   []string `json:"doc_groups,omitempty"`
	TokenLimit  int      `json:"token_limit,omitempty"`
	TopN        int      `json:"top_n,omitempty"`
}

// GetTopContexts handles POST /getTopContexts.
func (h *RetrievalHandler) GetTopContexts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteErrorMessage(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}

	var req retrievalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorMessage(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body")
		return
	}
	if strings.TrimSpace(req.SearchQuery) == "" {
		WriteErrorMessage(w, http.StatusBadRequest, "INVALID_REQUEST", "search_query is required")
		return
	}
	if strings.TrimSpace(req.CourseName) == "" {
		WriteErrorMessage(w, http.StatusBadRequest, "INVALID_REQUEST", "course_name is required")
		return
	}

	items, err := h.retriever.Retrieve(r.Context(), retrieval.Query{
		Text:      req.SearchQuery,
		ProjectID: req.CourseName,
		DocGroups: req.DocGroups,
		TopN:      req.TopN,
	})
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	// Clients expect an array even when nothing matched.
	if items == nil {
		items = []retrieval.ContextItem{}
	}
	WriteSuccess(w, items)
}
