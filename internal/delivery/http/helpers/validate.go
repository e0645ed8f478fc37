package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// maxRequestBody bounds decoded request bodies.
const maxRequestBody = 1 << 20

// ErrInvalidRequest marks decode and validation failures returned by Decode.
var ErrInvalidRequest = errors.New("invalid request")

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// Decode decodes the request body into dest (with DisallowUnknownFields) and,
// if dest implements Validator, runs Validate(). Failures wrap ErrInvalidRequest.
func Decode(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return errors.Join(ErrInvalidRequest, err)
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			return errors.Join(ErrInvalidRequest, errors.New(strings.Join(errs, "; ")))
		}
	}
	return nil
}

// Message returns the client facing part of a Decode error.
func Message(err error) string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		errs := joined.Unwrap()
		if len(errs) > 1 {
			return errs[len(errs)-1].Error()
		}
	}
	return err.Error()
}
