package handler

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"callsync/internal/csvimport"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/platform/httputil"
	"callsync/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mocks.go -package=mocks

// maxUploadBytes caps a CSV upload. Providers export monthly batches well
// under this; anything larger is someone uploading the wrong file.
const maxUploadBytes = 32 << 20

// Service defines the import operations the handler needs.
type Service interface {
	Import(ctx context.Context, userID id.UserID, filename string, r io.Reader) (csvimport.Summary, error)
	Get(ctx context.Context, userID id.UserID, impID id.ImportID) (csvimport.Import, error)
	List(ctx context.Context, userID id.UserID) ([]csvimport.Import, error)
}

// Handler wires CSV import endpoints to the import service. The upload
// route takes the file itself, not JSON, so it must be mounted outside any
// JSON content-type enforcement.
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

// Register mounts import endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/imports", h.HandleUpload)
	r.Get("/imports", h.HandleList)
	r.Get("/imports/{importID}", h.HandleGet)
}

// HandleUpload handles POST /imports. Accepts either a multipart form with
// a "file" field or a raw text/csv body. Rows that fail to parse never fail
// the upload; they come back in the summary.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	file, filename, err := openUpload(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	defer file.Close()

	summary, err := h.service.Import(ctx, userID, filename, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "csv import failed",
			"request_id", requestID,
			"filename", filename,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "csv imported",
		"request_id", requestID,
		"import_id", summary.ImportID.String(),
		"total_rows", summary.TotalRows,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromSummary(summary))
}

// openUpload extracts the CSV stream from the request. Multipart uploads
// use the "file" field; anything else is treated as a raw CSV body.
func openUpload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, "", domerr.New(domerr.CodeBadRequest, "malformed multipart upload")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", domerr.New(domerr.CodeBadRequest, "multipart field \"file\" is required")
		}
		return file, header.Filename, nil
	}

	if r.Body == nil || r.ContentLength == 0 {
		return nil, "", domerr.New(domerr.CodeBadRequest, "request body is required")
	}
	return http.MaxBytesReader(w, r.Body, maxUploadBytes), "upload.csv", nil
}

// HandleGet handles GET /imports/{importID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	impID, err := id.ParseImportID(chi.URLParam(r, "importID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	imp, err := h.service.Get(ctx, userID, impID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromImport(imp))
}

// HandleList handles GET /imports.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	imports, err := h.service.List(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := ListResponse{Imports: make([]ImportResponse, 0, len(imports))}
	for _, imp := range imports {
		resp.Imports = append(resp.Imports, FromImport(imp))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
