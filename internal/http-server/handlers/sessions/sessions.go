package sessions

import (
	"log/slog"
	"net/http"

	"FoodScout/bot/dialog"
	"FoodScout/internal/lib/api/response"
	"FoodScout/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Core interface {
	ActiveSessions() []dialog.SessionInfo
}

type ListResponse struct {
	response.Response
	Sessions []dialog.SessionInfo `json:"sessions"`
}

// List returns a snapshot of the dialog sessions awaiting a reply.
func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.sessions")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("session listing not available")
			render.JSON(w, r, response.Error("Session listing not available"))
			return
		}

		active := handler.ActiveSessions()
		logger.Debug("list sessions", slog.Int("count", len(active)))

		render.JSON(w, r, ListResponse{
			Response: response.Ok(""),
			Sessions: active,
		})
	}
}
