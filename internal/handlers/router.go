package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/eckform/internal/buildinfo"
	"github.com/xelth-com/eckform/internal/middleware"
	"github.com/xelth-com/eckform/internal/pagination"
	"github.com/xelth-com/eckform/internal/store"
	"github.com/xelth-com/eckform/internal/websocket"
	"go.uber.org/zap"
)

// Router wraps the mux router, the record store and the shared page view
type Router struct {
	*mux.Router
	store  *store.Store
	view   *pagination.View
	hub    *websocket.Hub
	logger *zap.Logger

	unsubscribe []func()
}

// NewRouter creates a new HTTP router with all routes and subscribes the
// websocket hub to store and view changes
func NewRouter(st *store.Store, view *pagination.View, hub *websocket.Hub, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		Router: mux.NewRouter(),
		store:  st,
		view:   view,
		hub:    hub,
		logger: logger,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Record routes
	records := api.PathPrefix("/records").Subrouter()
	records.HandleFunc("", r.listRecords).Methods("GET")
	records.HandleFunc("", r.createRecord).Methods("POST")
	records.HandleFunc("", r.clearRecords).Methods("DELETE")
	records.HandleFunc("/{id}", r.getRecord).Methods("GET")
	records.HandleFunc("/{id}", r.updateRecord).Methods("PUT")
	records.HandleFunc("/{id}", r.deleteRecord).Methods("DELETE")
	records.HandleFunc("/{id}/form", r.getRecordForm).Methods("GET")
	records.HandleFunc("/{id}/label", r.getRecordLabel).Methods("GET")

	// Page navigation
	api.HandleFunc("/view/page", r.navigate).Methods("POST")
	api.HandleFunc("/view/size", r.setPageSize).Methods("POST")
	api.HandleFunc("/labels", r.getPageLabels).Methods("GET")

	// Change notifications
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(r.hub, w, req)
	})

	r.subscribe()
	return r
}

// Handler returns the router wrapped in the standard middleware chain
func (r *Router) Handler() http.Handler {
	return middleware.CaseInsensitiveMiddleware(middleware.RequestLogger(r.logger)(r.Router))
}

// Close drops the store and view subscriptions
func (r *Router) Close() {
	for _, fn := range r.unsubscribe {
		fn()
	}
	r.unsubscribe = nil
}

// subscribe keeps the shared view clamped and pushes every change to
// connected pages
func (r *Router) subscribe() {
	r.unsubscribe = append(r.unsubscribe,
		r.store.Subscribe(func(e store.Event) {
			r.view.Refresh()
			if r.hub != nil {
				r.hub.Broadcast(websocket.TypeStoreChanged, e)
			}
		}),
		r.view.Subscribe(func(st pagination.State) {
			if r.hub != nil {
				r.hub.Broadcast(websocket.TypeViewChanged, st)
			}
		}),
	)
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns build information and store counters
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	clients := 0
	if r.hub != nil {
		clients = r.hub.ClientCount()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "running",
		"build":     buildinfo.Get(),
		"records":   r.store.Count(),
		"nextId":    r.store.NextID(),
		"view":      r.view.State(),
		"wsClients": clients,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
