package transcript

import (
	"log/slog"
	"net/http"
	"strconv"

	"FoodScout/entity"
	"FoodScout/internal/lib/api/response"
	"FoodScout/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const defaultLimit = 50

type Core interface {
	ChatHistory(userID, chatID string, limit int64) ([]entity.ChatMessage, error)
}

type HistoryResponse struct {
	response.Response
	Messages []entity.ChatMessage `json:"messages"`
}

// History returns recent transcript messages for one conversation.
func History(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.transcript")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID := r.URL.Query().Get("user_id")
		chatID := r.URL.Query().Get("chat_id")
		if userID == "" || chatID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user_id and chat_id are required"))
			return
		}

		limit := int64(defaultLimit)
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		messages, err := handler.ChatHistory(userID, chatID, limit)
		if err != nil {
			logger.Error("load chat history", sl.Err(err))
			render.JSON(w, r, response.Error("History not available"))
			return
		}
		logger.Debug("chat history", slog.Int("messages", len(messages)))

		render.JSON(w, r, HistoryResponse{
			Response: response.Ok(""),
			Messages: messages,
		})
	}
}
