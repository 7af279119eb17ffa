package controllers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"legalbot/legalbot/services/extract"
	"legalbot/legalbot/services/llm"
	"legalbot/legalbot/sources/psql/models"
	"legalbot/legalbot/utils/logging"

	"go.uber.org/zap"
)

// noQuestion reports whether the message text carries no real user question,
// only an upload placeholder.
func noQuestion(text string) bool {
	return text == "" || text == fileUploadPlaceholder || strings.HasPrefix(text, "Analyze this file:")
}

func documentPrompt(question, name, extracted string) string {
	if noQuestion(question) {
		return fmt.Sprintf("Please analyze this legal document for startup compliance considerations. Focus on key legal terms, compliance requirements, potential risks, and actionable recommendations.\n\nDocument content from %s:\n\n%s", name, extracted)
	}
	return fmt.Sprintf("%s\n\nDocument content from %s:\n\n%s", question, name, extracted)
}

func uploadAnalysisPrompt(name string) string {
	return fmt.Sprintf("Please analyze this document for startup legal compliance considerations. Focus on legal terms, compliance requirements, and actionable recommendations for the file: %s", name)
}

func storedAnalysisPrompt(name string) string {
	return fmt.Sprintf("Please analyze this document for startup legal compliance considerations. If this file is not related to legal compliance for startups (business formation, contracts, policies, etc.), please let me know and ask for relevant legal documents instead. Focus on legal terms, compliance requirements, and actionable recommendations for the file: %s", name)
}

// buildContents converts the full message history into the role-tagged
// content list for the generation endpoint, with the fixed two-turn system
// preamble in front. Stored-file lookups are independent reads and run
// concurrently; a missing or unreadable file drops the file part only.
func (c *ChatController) buildContents(ctx context.Context, messages []models.Message) []llm.Content {
	files := make([]*models.File, len(messages))
	var wg sync.WaitGroup
	for i, msg := range messages {
		if msg.FileID == "" {
			continue
		}
		wg.Add(1)
		go func(i int, fileID string) {
			defer wg.Done()
			file, err := c.fileDAO.GetFileByID(ctx, fileID)
			if err != nil {
				logging.ErrorLogger.Error("fetch file for context", zap.String("file_id", fileID), zap.Error(err))
				return
			}
			if file == nil {
				logging.AppLogger.Warn("message references missing file", zap.String("file_id", fileID))
				return
			}
			files[i] = file
		}(i, msg.FileID)
	}
	wg.Wait()

	contents := []llm.Content{
		llm.TextContent("user", systemPrompt),
		llm.TextContent("model", systemAck),
	}

	for i, msg := range messages {
		role := "model"
		if msg.Sender == models.SenderUser {
			role = "user"
		}

		var parts []llm.Part
		if msg.Text != "" {
			parts = append(parts, llm.Part{Text: msg.Text})
		}

		if upload := msg.Upload; upload != nil {
			parts = append(parts, uploadParts(msg.Text, upload)...)
		}

		if file := files[i]; file != nil {
			parts = append(parts, storedFileParts(msg.Text, file)...)
		}

		if len(parts) == 0 {
			continue
		}
		contents = append(contents, llm.Content{Role: role, Parts: parts})
	}
	return contents
}

// uploadParts renders the transient payload of the current request.
func uploadParts(question string, upload *models.FileUpload) []llm.Part {
	if upload.Rejected {
		reason := upload.RejectionReason
		if reason == "" {
			reason = defaultRejectionReason
		}
		return []llm.Part{{Text: reason}}
	}

	// Anything with extracted text (DOCX, HTML, plain text) is inlined as
	// text; DOCX without extraction gets the explicit notice.
	if upload.ExtractedText != "" {
		return []llm.Part{{Text: documentPrompt(question, upload.OriginalName, upload.ExtractedText)}}
	}
	if extract.IsDocument(upload.MimeType, upload.OriginalName) {
		return []llm.Part{{Text: fmt.Sprintf("DOCX file %q was uploaded but text could not be extracted.", upload.OriginalName)}}
	}

	parts := []llm.Part{{InlineData: &llm.InlineData{MimeType: upload.MimeType, Data: upload.Data}}}
	if noQuestion(question) {
		parts = append(parts, llm.Part{Text: uploadAnalysisPrompt(upload.OriginalName)})
	}
	return parts
}

// storedFileParts renders a durable file referenced by a historical message.
func storedFileParts(question string, file *models.File) []llm.Part {
	if file.ExtractedText != "" {
		return []llm.Part{{Text: documentPrompt(question, file.OriginalName, file.ExtractedText)}}
	}
	if extract.IsDocument(file.MimeType, file.OriginalName) {
		return []llm.Part{{Text: fmt.Sprintf("DOCX file %q was uploaded but text could not be extracted.", file.OriginalName)}}
	}

	parts := []llm.Part{{InlineData: &llm.InlineData{MimeType: file.MimeType, Data: file.Data}}}
	if noQuestion(question) {
		parts = append(parts, llm.Part{Text: storedAnalysisPrompt(file.OriginalName)})
	}
	return parts
}
