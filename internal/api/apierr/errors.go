package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/snapshot"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidPlacement = "INVALID_PLACEMENT"
	CodeInvalidDimension = "INVALID_DIMENSION"
	CodeUnknownLevel     = "UNKNOWN_LEVEL"
	CodeUnknownStrategy  = "UNKNOWN_STRATEGY"
	CodeEmptyCell        = "EMPTY_CELL"
	CodeNotCollectible   = "NOT_COLLECTIBLE"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeGameOver         = "GAME_OVER"
	CodeCorruptSnapshot  = "CORRUPT_SNAPSHOT"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusFor returns the HTTP status an error is reported with
func StatusFor(err error) int {
	return toHTTPError(err).status
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is over"}}
	case errors.Is(err, model.ErrInvalidPlacement):
		return &httpError{http.StatusConflict, APIError{CodeInvalidPlacement, "Cell is void, occupied or off the board"}}
	case errors.Is(err, model.ErrEmptyCell):
		return &httpError{http.StatusConflict, APIError{CodeEmptyCell, "Cell has no piece"}}
	case errors.Is(err, model.ErrNotCollectible):
		return &httpError{http.StatusConflict, APIError{CodeNotCollectible, "Piece is not collectible"}}
	case errors.Is(err, model.ErrUnknownLevel):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownLevel, "Unknown level mode"}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, "Unknown bot strategy"}}
	case errors.Is(err, model.ErrInvalidDimension):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDimension, "Board dimensions must be positive"}}

	// Stored state that no longer decodes
	case errors.Is(err, snapshot.ErrCorruptSnapshot), errors.Is(err, snapshot.ErrUnsupportedSnapshot):
		return &httpError{http.StatusInternalServerError, APIError{CodeCorruptSnapshot, "Stored game could not be read"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
