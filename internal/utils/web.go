package utils

import (
	"encoding/json"
	std_errors "errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kanbo-dev/kanbo/internal/errors"
	"github.com/kanbo-dev/kanbo/internal/logger"
)

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	// coded errors may arrive wrapped (cascade steps annotate with the step name)
	var coded *errors.ErrorWithStatusCode
	if std_errors.As(err, &coded) {
		http.Error(w, coded.Message, coded.StatusCode)
		return
	}
	// default error is 500; internal detail stays in the logs
	logger.Log.Error("internal error", "error", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

func WriteJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encode response", "error", err)
	}
}

// WriteJSONStatus writes a JSON body with a non-200 status code. The
// Content-Type has to land before the status line does.
func WriteJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encode response", "error", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Required fields missing or malformed", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
