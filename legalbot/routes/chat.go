package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"legalbot/legalbot/config"
	"legalbot/legalbot/controllers"
	"legalbot/legalbot/middlewares"
	"legalbot/legalbot/types"
	"legalbot/legalbot/utils/logging"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ChatRoutes(ctrl *controllers.ChatController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.OptionalAuth(cfg))

	// GET /chat?id=<id>&shared=1 : public shared read (no auth)
	// GET /chat                  : caller's chat history
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		chatID := r.URL.Query().Get("id")
		shared := r.URL.Query().Get("shared") == "1"

		if shared && chatID != "" {
			chat, err := ctrl.SharedChat(r.Context(), chatID)
			if err != nil {
				if errors.Is(err, controllers.ErrChatNotFound) {
					writeError(w, http.StatusNotFound, "Chat not found")
					return
				}
				logging.ErrorLogger.Error("fetch shared chat", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Failed to fetch shared chat")
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"chat": chat})
			return
		}

		userID := middlewares.UserID(r.Context())
		if userID == "" {
			writeError(w, http.StatusBadRequest, "User ID required")
			return
		}
		chats, err := ctrl.History(r.Context(), userID)
		if err != nil {
			logging.ErrorLogger.Error("fetch chat history", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch chat history")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"history": chats})
	})

	// POST /chat : send a message through the pipeline
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if r.Header.Get("X-Demo") == "1" {
			req.Demo = true
		}

		userID := middlewares.UserID(r.Context())
		if userID == "" && !req.Demo {
			writeError(w, http.StatusBadRequest, "User ID required")
			return
		}

		chat, err := ctrl.SendMessage(r.Context(), userID, middlewares.UserName(r.Context()), req)
		if err != nil {
			if errors.Is(err, controllers.ErrChatNotFound) {
				writeError(w, http.StatusNotFound, "Chat not found")
				return
			}
			logging.ErrorLogger.Error("process chat message", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to process message")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"chat": chat})
	})

	// DELETE /chat?id=<id> : remove a chat and its files
	r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.UserID(r.Context())
		chatID := r.URL.Query().Get("id")
		if userID == "" || chatID == "" {
			writeError(w, http.StatusBadRequest, "User ID and chat ID required")
			return
		}
		if err := ctrl.DeleteChat(r.Context(), userID, chatID); err != nil {
			if errors.Is(err, controllers.ErrChatNotFound) {
				writeError(w, http.StatusNotFound, "Chat not found or user not authorized")
				return
			}
			logging.ErrorLogger.Error("delete chat", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to delete chat")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	return r
}
