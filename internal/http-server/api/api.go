package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"FoodScout/internal/config"
	"FoodScout/internal/http-server/handlers/errors"
	"FoodScout/internal/http-server/handlers/message"
	"FoodScout/internal/http-server/handlers/sessions"
	"FoodScout/internal/http-server/handlers/transcript"
	"FoodScout/internal/http-server/middleware/authenticate"
	"FoodScout/internal/http-server/middleware/timeout"
	"FoodScout/internal/lib/sl"
	"FoodScout/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	ws.Authenticator
	message.Core
	sessions.Core
	transcript.Core
}

// New builds the ops router and serves it. Blocks.
func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	if hub != nil {
		router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWs(hub, handler, log, w, r)
		})
	}

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(timeout.Timeout(5))
		v1.Use(render.SetContentType(render.ContentTypeJSON))
		v1.Use(authenticate.New(log, handler))

		v1.Route("/message", func(r chi.Router) {
			r.Post("/", message.Inject(log, handler))
		})
		v1.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessions.List(log, handler))
		})
		v1.Route("/transcript", func(r chi.Router) {
			r.Get("/", transcript.History(log, handler))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
