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

func UploadRoutes(ctrl *controllers.UploadController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	// POST /upload : validate a file and hand back the transient payload the
	// client echoes to POST /chat.
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.UploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		payload, err := ctrl.Validate(r.Context(), req.FileName, req.MimeType, req.Data)
		if err != nil {
			if errors.Is(err, controllers.ErrInvalidUpload) {
				writeError(w, http.StatusBadRequest, "File name, MIME type and base64 data required")
				return
			}
			logging.ErrorLogger.Error("validate upload", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to process upload")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tempFileData": payload})
	})

	return r
}
