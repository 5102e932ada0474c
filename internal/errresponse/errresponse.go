package errresponse

import (
	"net/http"

	"github.com/go-chi/render"
)

//--
// Error response payloads & renderers
//--

// ErrResponse renderer type for handling all sorts of errors.
//
// Every API error body carries a `message` field. Validation failures put
// the specific rejection reason there; storage failures get a generic
// message and the detail stays in the server logs.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Message   string `json:"message"`         // user-level failure reason
	ErrorText string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		Message:        err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		Message:        "error rendering response.",
		ErrorText:      err.Error(),
	}
}

// nolint
var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: "resource not found."}

// nolint
var ErrInternal = &ErrResponse{HTTPStatusCode: http.StatusInternalServerError, Message: "internal server error."}
