package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"callsync/pkg/domerr"
)

// maxBodyBytes caps JSON request bodies. CSV uploads bypass this; they are
// streamed, not decoded.
const maxBodyBytes = 1 << 20

// errorResponse is the wire shape for every error the API returns.
type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON serializes v with the given status. Encoding failures after the
// header is written cannot be recovered, so they are deliberately ignored.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError translates a domain error into the standard error envelope.
// Internal errors keep their message out of the response; everything a
// client can act on keeps its description.
func WriteError(w http.ResponseWriter, err error) {
	code := domerr.CodeOf(err)
	resp := errorResponse{Error: string(code)}
	if code != domerr.CodeInternal {
		var de *domerr.Error
		if errors.As(err, &de) {
			resp.Description = de.Message
		}
	}
	WriteJSON(w, domerr.ToHTTPStatus(code), resp)
}

// Validatable is implemented by request types that validate and normalize
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// DecodeAndPrepare decodes a JSON body into T, validates it, and writes the
// error response itself on failure. Callers just return when ok is false.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	req := PT(new(T))
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			WriteError(w, domerr.New(domerr.CodeBadRequest, "request body is required"))
			return nil, false
		}
		logger.WarnContext(ctx, "request body rejected",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, domerr.New(domerr.CodeBadRequest, "malformed request body"))
		return nil, false
	}

	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
