package controllers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"legalbot/legalbot/services/classifier"
	"legalbot/legalbot/services/extract"
	"legalbot/legalbot/sources/psql/models"
	"legalbot/legalbot/utils/logging"

	"go.uber.org/zap"
)

var ErrInvalidUpload = errors.New("invalid upload payload")

const maxUploadSize = 10 << 20 // 10 MiB decoded

const nonLegalFileReason = "This file doesn't appear to contain startup legal compliance content. Please upload documents related to business formation, contracts, policies, or other legal compliance matters."

// Binary formats go to the model as inline data, so the server cannot vet
// their content; text-bearing formats are checked against the legal
// vocabulary before they are allowed through.
var allowedMimeTypes = map[string]bool{
	extract.DocxMimeType: true,
	"application/pdf":    true,
	"image/png":          true,
	"image/jpeg":         true,
	"image/webp":         true,
	"text/html":          true,
	"text/plain":         true,
}

type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// Validate inspects an uploaded file and returns the transient payload the
// client attaches to its next chat message. Disallowed or off-topic files
// come back with the Rejected flag set instead of an error, so the pipeline
// can answer conversationally.
func (c *UploadController) Validate(ctx context.Context, fileName, mimeType, dataB64 string) (*models.FileUpload, error) {
	if fileName == "" || mimeType == "" || dataB64 == "" {
		return nil, ErrInvalidUpload
	}
	raw, err := base64.StdEncoding.DecodeString(dataB64)
	if err != nil {
		return nil, ErrInvalidUpload
	}

	payload := &models.FileUpload{
		OriginalName: fileName,
		MimeType:     mimeType,
		Data:         dataB64,
	}

	if len(raw) > maxUploadSize {
		payload.Rejected = true
		payload.RejectionReason = fmt.Sprintf("File rejected: %q exceeds the %d MB upload limit.", fileName, maxUploadSize>>20)
		return payload, nil
	}

	baseMime := strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	if !allowedMimeTypes[baseMime] {
		payload.Rejected = true
		payload.RejectionReason = fmt.Sprintf("File rejected: %q is not a supported document type. Please upload DOCX, PDF, HTML, plain text or image files.", fileName)
		return payload, nil
	}

	switch baseMime {
	case extract.DocxMimeType:
		text, err := extract.DocxText(raw)
		if err != nil {
			// Assembly falls back to the could-not-extract notice.
			logging.AppLogger.Warn("docx extraction failed", zap.String("file", fileName), zap.Error(err))
			return payload, nil
		}
		payload.ExtractedText = text
	case "text/html":
		text, err := extract.HTMLText(raw)
		if err != nil {
			logging.AppLogger.Warn("html extraction failed", zap.String("file", fileName), zap.Error(err))
			return payload, nil
		}
		payload.ExtractedText = text
	case "text/plain":
		payload.ExtractedText = string(raw)
	default:
		// PDFs and images pass through as inline binary, unvetted.
		return payload, nil
	}

	if payload.ExtractedText != "" && !classifier.ContainsLegalTerm(payload.ExtractedText) {
		payload.Rejected = true
		payload.RejectionReason = nonLegalFileReason
	}
	return payload, nil
}
