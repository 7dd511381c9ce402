package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	"github.com/fakhrymubarak/city-dashboard/internal/model"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("Invalid JSON body")

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, errMsg string) {
	writeJSONResponse(w, statusCode, model.ErrorResponse(errMsg))
}

// decodeJSONBody reads a single JSON object of at most 1MB into v.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errInvalidBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}
