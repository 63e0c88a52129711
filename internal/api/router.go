package api

import (
	"net/http"
	"survey-transform-service/internal/api/handlers"
	"survey-transform-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(recorder ports.RunRecorder, maxBodyBytes int64) http.Handler {
	mux := http.NewServeMux()

	transformHandler := &handlers.TransformHandler{
		Recorder:     recorder,
		MaxBodyBytes: maxBodyBytes,
	}
	runHandler := &handlers.RunHandler{Recorder: recorder}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/convert", transformHandler.Convert)
	mux.HandleFunc("/rotate", transformHandler.Rotate)
	mux.HandleFunc("/runs", runHandler.List)

	return loggingMiddleware(mux)
}
