package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/services"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers binds the HTTP routes to the services.
type Handlers struct {
	users    *services.UserService
	posts    *services.PostService
	media    *services.MediaService
	logger   logging.Logger
	metrics  *Metrics
	registry *prometheus.Registry
}

func NewHandlers(l logging.Logger, us *services.UserService, ps *services.PostService, ms *services.MediaService, registry *prometheus.Registry) *Handlers {
	return &Handlers{
		users:    us,
		posts:    ps,
		media:    ms,
		logger:   l.With("module", "http_handlers"),
		metrics:  NewMetrics(registry),
		registry: registry,
	}
}

// Router builds the complete handler: request logging and CORS wrap the
// mux so that preflight requests and unmatched paths are covered too.
func (h *Handlers) Router() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.Use(h.metrics.Middleware)

	r.HandleFunc(api.PathHealth, h.health).Methods(http.MethodGet)
	r.Handle(api.PathMetrics, promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc(api.PathRegister, h.register).Methods(http.MethodPost)
	r.HandleFunc(api.PathLogin, h.login).Methods(http.MethodPost)
	r.Handle(api.PathProfile, h.requireUser(h.profile)).Methods(http.MethodGet)

	r.HandleFunc(api.PathPosts, h.listPosts).Methods(http.MethodGet)
	r.Handle(api.PathPosts, h.requireUser(h.createPost)).Methods(http.MethodPost)

	post := api.PathPosts + "/{id}"
	r.Handle(post, h.requireUser(h.updatePost)).Methods(http.MethodPut)
	r.Handle(post, h.requireUser(h.deletePost)).Methods(http.MethodDelete)
	r.Handle(post+"/like", h.requireUser(h.toggleLike)).Methods(http.MethodPut)
	r.Handle(post+"/image", h.requireUser(h.requestImageUpload)).Methods(http.MethodPost)
	r.HandleFunc(post+"/image", h.imageURL).Methods(http.MethodGet)

	return h.logRequests(cors(r))
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.Health{Status: "ok"})
}
