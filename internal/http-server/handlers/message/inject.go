package message

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"FoodScout/bot/dialog"
	"FoodScout/internal/lib/api/response"
	"FoodScout/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Core interface {
	InjectMessage(ctx context.Context, msg dialog.Message) (bool, error)
}

type InjectRequest struct {
	UserID string `json:"user_id" validate:"required"`
	ChatID string `json:"chat_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
	Kind   string `json:"kind" validate:"required,oneof=direct_message direct_mention mention ambient"`
}

type InjectResponse struct {
	response.Response
	Handled bool `json:"handled"`
}

// Inject feeds a message into the bot as if it came from the transport.
// Useful for webhooks and manual testing.
func Inject(log *slog.Logger, handler Core) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.message")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("message inject not available")
			render.JSON(w, r, response.Error("Message inject not available"))
			return
		}

		var req InjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid inject request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request: "+err.Error()))
			return
		}

		handled, err := handler.InjectMessage(r.Context(), dialog.Message{
			Text:   req.Text,
			UserID: req.UserID,
			ChatID: req.ChatID,
			Kind:   dialog.ContextKind(req.Kind),
		})
		if err != nil {
			logger.Error("inject message", sl.Err(err))
			render.JSON(w, r, response.Error("Inject failed"))
			return
		}
		logger.Debug("inject message", slog.Bool("handled", handled))

		render.JSON(w, r, InjectResponse{
			Response: response.Ok("Message dispatched"),
			Handled:  handled,
		})
	}
}
