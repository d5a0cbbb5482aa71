package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"callsync/internal/links"
	"callsync/internal/matching"
	"callsync/internal/matching/service"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/platform/httputil"
	"callsync/pkg/requestcontext"
)

// Matcher computes ranked matches for a recording.
type Matcher interface {
	Match(ctx context.Context, userID id.UserID, recordingID id.RecordingID, opts matching.Options) (service.Result, error)
	Cached(ctx context.Context, userID id.UserID, recordingID id.RecordingID, opts matching.Options) (service.Result, error)
	InvalidateResult(ctx context.Context, recordingID id.RecordingID)
}

// Linker commits, releases and reads recording-to-record links.
type Linker interface {
	Commit(ctx context.Context, userID id.UserID, recordingID id.RecordingID, cdrID id.CDRID, method links.Method) (links.Link, error)
	Release(ctx context.Context, userID id.UserID, recordingID id.RecordingID) (links.Link, error)
	Active(ctx context.Context, userID id.UserID, recordingID id.RecordingID) (links.Link, error)
}

// Handler wires the match and link endpoints to their services.
type Handler struct {
	matcher Matcher
	linker  Linker
	logger  *slog.Logger
}

func New(matcher Matcher, linker Linker, logger *slog.Logger) *Handler {
	return &Handler{
		matcher: matcher,
		linker:  linker,
		logger:  logger,
	}
}

// Register mounts the match and link endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/recordings/{recordingID}/matches", h.HandleComputeMatches)
	r.Get("/recordings/{recordingID}/matches", h.HandleGetMatches)
	r.Post("/recordings/{recordingID}/link", h.HandleCommitLink)
	r.Delete("/recordings/{recordingID}/link", h.HandleReleaseLink)
	r.Get("/recordings/{recordingID}/link", h.HandleGetLink)
}

// HandleComputeMatches handles POST /recordings/{recordingID}/matches.
// A recording with no candidates or no candidate above threshold is a
// successful response with that outcome, never an error.
func (h *Handler) HandleComputeMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	recordingID, err := id.ParseRecordingID(chi.URLParam(r, "recordingID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ComputeMatchesRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.matcher.Match(ctx, userID, recordingID, req.Options())
	if err != nil {
		h.logger.ErrorContext(ctx, "match computation failed",
			"request_id", requestID,
			"recording_id", recordingID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "matches computed",
		"request_id", requestID,
		"recording_id", recordingID.String(),
		"outcome", string(result.Outcome),
		"pool_size", result.PoolSize,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleGetMatches handles GET /recordings/{recordingID}/matches. Serves
// the cached result when one is fresh.
func (h *Handler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	recordingID, err := id.ParseRecordingID(chi.URLParam(r, "recordingID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.matcher.Cached(ctx, userID, recordingID, matching.DefaultOptions())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleCommitLink handles POST /recordings/{recordingID}/link.
func (h *Handler) HandleCommitLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	recordingID, err := id.ParseRecordingID(chi.URLParam(r, "recordingID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[CommitLinkRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	link, err := h.linker.Commit(ctx, userID, recordingID, req.ParsedCDRID(), req.ParsedMethod())
	if err != nil {
		h.logger.ErrorContext(ctx, "link commit failed",
			"request_id", requestID,
			"recording_id", recordingID.String(),
			"cdr_id", req.CDRID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	// The pool changed shape for every recording of this user, but only this
	// recording's cached result is guaranteed stale in a way reviewers see.
	h.matcher.InvalidateResult(ctx, recordingID)

	h.logger.InfoContext(ctx, "link committed",
		"request_id", requestID,
		"recording_id", recordingID.String(),
		"cdr_id", link.CDRID.String(),
		"quality", link.Quality,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromLink(link))
}

// HandleReleaseLink handles DELETE /recordings/{recordingID}/link.
func (h *Handler) HandleReleaseLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	recordingID, err := id.ParseRecordingID(chi.URLParam(r, "recordingID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	link, err := h.linker.Release(ctx, userID, recordingID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.matcher.InvalidateResult(ctx, recordingID)

	h.logger.InfoContext(ctx, "link released",
		"request_id", requestID,
		"recording_id", recordingID.String(),
		"cdr_id", link.CDRID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromLink(link))
}

// HandleGetLink handles GET /recordings/{recordingID}/link.
func (h *Handler) HandleGetLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	recordingID, err := id.ParseRecordingID(chi.URLParam(r, "recordingID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	link, err := h.linker.Active(ctx, userID, recordingID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromLink(link))
}
