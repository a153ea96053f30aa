package api

import (
	"facility-distance-service/internal/api/handlers"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(resolver handlers.DistanceResolver) http.Handler {
	mux := http.NewServeMux()

	distHandler := &handlers.DistanceHandler{Resolver: resolver}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/distances", distHandler.Batch)
	mux.HandleFunc("/distance", distHandler.Single)

	// The request id must be on the context before the logger reads it.
	return requestIDMiddleware(loggingMiddleware(mux))
}
