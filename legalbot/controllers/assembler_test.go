package controllers

import (
	"context"
	"strings"
	"testing"

	"legalbot/legalbot/sources/psql/dao"
	"legalbot/legalbot/sources/psql/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContentsPrependsSystemPreamble(t *testing.T) {
	ctrl, _ := newTestChatController(t, &fakeGenerator{})

	contents := ctrl.buildContents(context.Background(), []models.Message{
		{Text: "Do I need bylaws?", Sender: models.SenderUser},
		{Text: "Yes, corporations do.", Sender: models.SenderBot},
	})

	require.Len(t, contents, 4)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, systemPrompt, contents[0].Parts[0].Text)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, systemAck, contents[1].Parts[0].Text)
	assert.Equal(t, "user", contents[2].Role)
	assert.Equal(t, "model", contents[3].Role)
}

func TestBuildContentsDropsEmptyMessages(t *testing.T) {
	ctrl, _ := newTestChatController(t, &fakeGenerator{})

	contents := ctrl.buildContents(context.Background(), []models.Message{
		{Text: "", Sender: models.SenderUser}, // no text, no file
		{Text: "real question", Sender: models.SenderUser},
	})

	// preamble + one real entry
	require.Len(t, contents, 3)
	assert.Equal(t, "real question", contents[2].Parts[0].Text)
}

func TestUploadPartsDocumentWithQuestion(t *testing.T) {
	parts := uploadParts("Is this clause enforceable?", &models.FileUpload{
		OriginalName:  "contract.docx",
		MimeType:      "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		ExtractedText: "The parties agree...",
	})

	require.Len(t, parts, 1)
	assert.True(t, strings.HasPrefix(parts[0].Text, "Is this clause enforceable?\n\n"))
	assert.Contains(t, parts[0].Text, "Document content from contract.docx:")
	assert.Contains(t, parts[0].Text, "The parties agree...")
}

func TestUploadPartsDocumentWithoutQuestion(t *testing.T) {
	for _, question := range []string{"", fileUploadPlaceholder, "Analyze this file: contract.docx"} {
		parts := uploadParts(question, &models.FileUpload{
			OriginalName:  "contract.docx",
			MimeType:      "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			ExtractedText: "The parties agree...",
		})

		require.Len(t, parts, 1, "question %q", question)
		assert.True(t, strings.HasPrefix(parts[0].Text, "Please analyze this legal document"), "question %q", question)
	}
}

func TestUploadPartsDocxWithoutExtractedText(t *testing.T) {
	parts := uploadParts("", &models.FileUpload{
		OriginalName: "broken.docx",
		MimeType:     "application/octet-stream",
	})

	require.Len(t, parts, 1)
	assert.Contains(t, parts[0].Text, `"broken.docx" was uploaded but text could not be extracted`)
}

func TestUploadPartsBinaryAddsAnalysisInstruction(t *testing.T) {
	upload := &models.FileUpload{OriginalName: "scan.png", MimeType: "image/png", Data: "aW1n"}

	// File-only message: inline data plus the auxiliary instruction.
	parts := uploadParts("", upload)
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "image/png", parts[0].InlineData.MimeType)
	assert.Equal(t, "aW1n", parts[0].InlineData.Data)
	assert.Contains(t, parts[1].Text, "scan.png")

	// With a real question the instruction is omitted.
	parts = uploadParts("What does this notice mean?", upload)
	require.Len(t, parts, 1)
	require.NotNil(t, parts[0].InlineData)
}

func TestUploadPartsRejectedSubstitutesReason(t *testing.T) {
	parts := uploadParts("", &models.FileUpload{
		OriginalName:    "meme.png",
		MimeType:        "image/png",
		Rejected:        true,
		RejectionReason: "File rejected: off-topic content.",
	})
	require.Len(t, parts, 1)
	assert.Equal(t, "File rejected: off-topic content.", parts[0].Text)
	assert.Nil(t, parts[0].InlineData)

	// Default reason when the validator did not give one.
	parts = uploadParts("", &models.FileUpload{OriginalName: "meme.png", MimeType: "image/png", Rejected: true})
	require.Len(t, parts, 1)
	assert.Equal(t, defaultRejectionReason, parts[0].Text)
}

func TestBuildContentsFetchesStoredFiles(t *testing.T) {
	ctrl, db := newTestChatController(t, &fakeGenerator{})
	ctx := context.Background()

	fileDAO := dao.NewFileDAO(db)
	file := models.File{
		OriginalName:  "policy.docx",
		MimeType:      "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		ExtractedText: "Privacy policy terms...",
		UploadedBy:    testUserID,
	}
	require.NoError(t, fileDAO.CreateFile(ctx, &file))

	contents := ctrl.buildContents(ctx, []models.Message{
		{Text: fileUploadPlaceholder, Sender: models.SenderUser, FileID: file.ID},
		{Text: "Looks compliant.", Sender: models.SenderBot},
	})

	require.Len(t, contents, 4)
	userParts := contents[2].Parts
	// Placeholder text part plus the composed document prompt.
	require.Len(t, userParts, 2)
	assert.Contains(t, userParts[1].Text, "Privacy policy terms...")
	assert.True(t, strings.HasPrefix(userParts[1].Text, "Please analyze this legal document"))
}

func TestBuildContentsSkipsMissingStoredFile(t *testing.T) {
	ctrl, _ := newTestChatController(t, &fakeGenerator{})

	contents := ctrl.buildContents(context.Background(), []models.Message{
		{Text: "About that file", Sender: models.SenderUser, FileID: "44444444-4444-4444-4444-444444444444"},
	})

	require.Len(t, contents, 3)
	// Only the text part survives; the dangling reference is dropped.
	require.Len(t, contents[2].Parts, 1)
	assert.Equal(t, "About that file", contents[2].Parts[0].Text)
}

func TestStoredBinaryFileInstruction(t *testing.T) {
	file := &models.File{OriginalName: "deck.pdf", MimeType: "application/pdf", Data: "cGRm"}

	parts := storedFileParts("", file)
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Contains(t, parts[1].Text, "If this file is not related to legal compliance")

	parts = storedFileParts("Summarize the securities risks", file)
	require.Len(t, parts, 1)
}
