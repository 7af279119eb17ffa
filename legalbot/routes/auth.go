package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"legalbot/legalbot/controllers"
	"legalbot/legalbot/types"
	"legalbot/legalbot/utils/logging"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", func(w http.ResponseWriter, r *http.Request) {
		var req types.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Name, email and password required")
			return
		}
		user, token, err := ctrl.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, controllers.ErrEmailTaken) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			logging.ErrorLogger.Error("register user", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user, "token": token})
	})

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		user, token, err := ctrl.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, controllers.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, err.Error())
			case errors.Is(err, controllers.ErrAccountBlocked):
				writeError(w, http.StatusForbidden, err.Error())
			default:
				logging.ErrorLogger.Error("login", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Login failed")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user, "token": token})
	})

	r.Post("/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		var req types.ForgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			writeError(w, http.StatusBadRequest, "Email required")
			return
		}
		if err := ctrl.ForgotPassword(r.Context(), req.Email); err != nil {
			logging.ErrorLogger.Error("forgot password", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to start password reset")
			return
		}
		// Same reply whether or not the account exists.
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	r.Post("/reset-password", func(w http.ResponseWriter, r *http.Request) {
		var req types.ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Email == "" || req.Code == "" || req.NewPassword == "" {
			writeError(w, http.StatusBadRequest, "Email, otp and new password required")
			return
		}
		if err := ctrl.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
			if errors.Is(err, controllers.ErrInvalidOTP) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			logging.ErrorLogger.Error("reset password", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to reset password")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	return r
}
