package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"callsync/internal/recordings"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/platform/httputil"
	"callsync/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mocks.go -package=mocks

// Service defines the recording operations the handler needs.
type Service interface {
	Register(ctx context.Context, userID id.UserID, in recordings.RegisterInput) (recordings.Recording, error)
	Get(ctx context.Context, userID id.UserID, recID id.RecordingID) (recordings.Recording, error)
	List(ctx context.Context, userID id.UserID) ([]recordings.Recording, error)
}

// Handler wires recording endpoints to the recordings service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts recording endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/recordings", h.HandleRegister)
	r.Get("/recordings", h.HandleList)
	r.Get("/recordings/{recordingID}", h.HandleGet)
}

// HandleRegister handles POST /recordings.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Register(ctx, userID, req.Input())
	if err != nil {
		h.logger.ErrorContext(ctx, "recording registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "recording registered",
		"request_id", requestID,
		"recording_id", rec.ID.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromRecording(rec))
}

// HandleGet handles GET /recordings/{recordingID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	recID, err := id.ParseRecordingID(chi.URLParam(r, "recordingID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.service.Get(ctx, userID, recID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecording(rec))
}

// HandleList handles GET /recordings.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	recs, err := h.service.List(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := ListResponse{Recordings: make([]RecordingResponse, 0, len(recs))}
	for _, rec := range recs {
		resp.Recordings = append(resp.Recordings, FromRecording(rec))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
