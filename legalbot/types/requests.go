package types

import "legalbot/legalbot/sources/psql/models"

type SendMessageRequest struct {
	ChatID   string `json:"chatId,omitempty"`
	Message  string `json:"message"`
	Title    string `json:"title,omitempty"`
	Demo     bool   `json:"demo,omitempty"`
	FileName string `json:"fileName,omitempty"`
	// TempFileData is the transient payload produced by the upload validator,
	// echoed back by the client with the message that carries the file.
	TempFileData *models.FileUpload `json:"tempFileData,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type AdminActionRequest struct {
	Action string `json:"action"`
}

type UploadRequest struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}
