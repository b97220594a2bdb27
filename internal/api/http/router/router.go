package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/ride2gather-server/internal/api/http/handler"
	"github.com/dtroode/ride2gather-server/internal/api/http/middleware"
	"github.com/dtroode/ride2gather-server/internal/logger"
)

// Router wires the HTTP API routes and middleware.
type Router struct {
	accounts       handler.AccountService
	profiles       handler.ProfileService
	avatars        handler.AvatarService
	maxJSONBytes   int64
	maxUploadBytes int64
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	accounts handler.AccountService,
	profiles handler.ProfileService,
	avatars handler.AvatarService,
	maxJSONBytes int64,
	maxUploadBytes int64,
	logger *logger.Logger,
) *Router {
	return &Router{
		accounts:       accounts,
		profiles:       profiles,
		avatars:        avatars,
		maxJSONBytes:   maxJSONBytes,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Register builds the route table and wraps it with request id,
// logging, panic recovery and tracing, outermost first.
func (r *Router) Register() http.Handler {
	mux := httprouter.New()
	mux.HandleMethodNotAllowed = true
	mux.NotFound = http.HandlerFunc(notFound)

	r.registerAccountRoutes(mux)
	r.registerProfileRoutes(mux)

	requestID := middleware.NewRequestID(r.logger)
	logging := middleware.NewLogging(r.logger)
	recovery := middleware.NewRecovery(r.logger)

	var h http.Handler = mux
	h = recovery.Handle(h)
	h = logging.Handle(h)
	h = requestID.Handle(h)

	return otelhttp.NewHandler(h, handler.ServiceName,
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + req.URL.Path
		}),
	)
}

func (r *Router) registerAccountRoutes(mux *httprouter.Router) {
	h := handler.NewAccount(r.accounts, r.maxJSONBytes, r.logger)

	mux.HandlerFunc(http.MethodGet, "/", h.Health)
	mux.HandlerFunc(http.MethodPost, "/signup", h.Signup)
	mux.HandlerFunc(http.MethodPost, "/login", h.Login)
	mux.HandlerFunc(http.MethodGet, "/user/:"+handler.UserParam, h.GetUser)
	mux.HandlerFunc(http.MethodGet, "/users", h.ListUsers)
}

func (r *Router) registerProfileRoutes(mux *httprouter.Router) {
	h := handler.NewProfile(r.profiles, r.avatars, r.maxJSONBytes, r.maxUploadBytes, r.logger)

	mux.HandlerFunc(http.MethodPatch, "/user/:"+handler.UserParam, h.UpdateUser)
	mux.HandlerFunc(http.MethodPost, "/user/:"+handler.UserParam+"/pfp", h.UploadAvatar)
	mux.HandlerFunc(http.MethodGet, "/uploads/*key", h.ServeAvatar)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"not found"}` + "\n"))
}
