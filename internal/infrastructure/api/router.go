package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every route behind CORS and access logging.
func NewRouter(handler *AdHandler, stream *StatusStream, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", handler.HandleIndex).Methods("GET")
	r.HandleFunc("/healthz", handler.HandleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/image", handler.HandleSelectImage).Methods("POST")
	api.HandleFunc("/script", handler.HandleGenerateScript).Methods("POST")
	api.HandleFunc("/video", handler.HandleGenerateVideo).Methods("POST")
	api.HandleFunc("/video/file", handler.HandleVideoFile).Methods("GET")
	api.HandleFunc("/state", handler.HandleState).Methods("GET")
	api.HandleFunc("/reset", handler.HandleReset).Methods("POST")

	r.HandleFunc("/ws/status", stream.HandleStatusStream).Methods("GET")

	return AccessLog(NewCORS(allowedOrigins).Handler(r))
}
