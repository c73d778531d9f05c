package rest

import (
	"context"
	"log/slog"
	"net/http"
)

type runner interface {
	Run(ctx context.Context) (int, error)
}

// TriggerHandler starts sync and enrichment runs on demand. Responses carry
// only counts; failures are logged and reported as a generic 500.
type TriggerHandler struct {
	sync   runner
	enrich runner
	log    *slog.Logger
}

// NewTriggerHandler creates a TriggerHandler.
func NewTriggerHandler(sync, enrich runner, logger *slog.Logger) *TriggerHandler {
	return &TriggerHandler{
		sync:   sync,
		enrich: enrich,
		log:    logger.With("handler", "trigger"),
	}
}

// Sync handles POST /api/sync.
func (h *TriggerHandler) Sync(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "sync", "synced", h.sync)
}

// Enrich handles POST /api/enrich.
func (h *TriggerHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "enrich", "enriched", h.enrich)
}

func (h *TriggerHandler) run(w http.ResponseWriter, r *http.Request, name, field string, job runner) {
	n, err := job.Run(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "triggered run failed",
			slog.String("job", name),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.log.InfoContext(r.Context(), "triggered run completed",
		slog.String("job", name),
		slog.Int("count", n),
	)
	writeJSON(w, http.StatusOK, map[string]int{field: n})
}
