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

func UserRoutes(ctrl *controllers.UserController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))
		gr.Use(middlewares.RequireAdmin)

		gr.Get("/", func(w http.ResponseWriter, r *http.Request) {
			users, err := ctrl.GetAllUsers(r.Context())
			if err != nil {
				logging.ErrorLogger.Error("list users", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Failed to fetch users")
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"users": users})
		})

		// PATCH /users/{id} : moderation actions
		gr.Patch("/{user_id}", func(w http.ResponseWriter, r *http.Request) {
			targetID := chi.URLParam(r, "user_id")
			var req types.AdminActionRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action == "" {
				writeError(w, http.StatusBadRequest, "Action required")
				return
			}
			if err := ctrl.AdminAction(r.Context(), targetID, req.Action); err != nil {
				switch {
				case errors.Is(err, controllers.ErrUserNotFound):
					writeError(w, http.StatusNotFound, "User not found")
				case errors.Is(err, controllers.ErrUnknownAction):
					writeError(w, http.StatusBadRequest, "Unknown action")
				default:
					logging.ErrorLogger.Error("admin action", zap.String("action", req.Action), zap.Error(err))
					writeError(w, http.StatusInternalServerError, "Failed to apply action")
				}
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		})
	})

	return r
}
