package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	apperrors "github.com/scenesmith/scenesmith/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteAppError maps a pipeline error onto its HTTP status and writes the
// JSON error body. Render failures additionally carry the captured renderer
// log so callers can see what broke without shell access to the server.
func WriteAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	message := apperrors.GetMessage(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	if message == "" {
		message = "An unexpected error occurred."
	}

	body := map[string]string{"error": string(code), "message": message}
	if log := apperrors.GetLog(err); log != "" {
		body["log"] = log
	}

	WriteJSON(w, statusForCode(code), body)
}

// statusForCode maps the error taxonomy onto HTTP status codes. Rejected
// input is the caller's fault; anything the pipeline accepted but could not
// deliver is a server error, including renderer timeouts.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeMissingSource,
		apperrors.ErrCodeMissingPrompt,
		apperrors.ErrCodeSceneNotDetected,
		apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeArtifactNotFound,
		apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeCanceled:
		// 499: client closed request (nginx convention). The caller is gone
		// either way, but access logs should not blame the server.
		return 499
	default:
		return http.StatusInternalServerError
	}
}
