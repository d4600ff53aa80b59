package main

import (
	"encoding/json"
	"io"
	"net/http"

	"golang.org/x/exp/slog"
)

// ReadRequestBody decodes r's JSON body into T.
func ReadRequestBody[T any](r *http.Request) (T, error) {
	var req T
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, err
	}
	return req, nil
}

// WriteResponse marshals resp as JSON with the given status code.
func WriteResponse[T any](w http.ResponseWriter, resp T, status int) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// Result pairs a handler's response value with the status code to send.
type Result struct {
	value  any
	status int
}

// OK wraps value as a 200 response.
func OK[T any](value T) Result {
	return Result{value: value, status: http.StatusOK}
}

// BadRequest wraps value as a 400 response.
func BadRequest[T any](value T) Result {
	return Result{value: value, status: http.StatusBadRequest}
}

// MapPost registers a POST handler at path that decodes its body as F,
// runs handler, and writes the Result as JSON.
func MapPost[F any](mux *http.ServeMux, path string, handler func(F) Result) {
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Info("POST " + path)
		body, err := ReadRequestBody[F](r)
		if err != nil {
			slog.Error("failed POST "+path, "error", err)
			WriteResponse(w, NewErrorResponse(path, err.Error()), http.StatusBadRequest)
			return
		}
		res := handler(body)
		if res.status != http.StatusOK {
			slog.Error("failed POST " + path)
			WriteResponse(w, NewErrorResponse(path, res.value), res.status)
			return
		}
		WriteResponse(w, res.value, res.status)
	})
}
