package controllers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"legalbot/legalbot/services/classifier"
	"legalbot/legalbot/services/llm"
	"legalbot/legalbot/sources/psql/dao"
	"legalbot/legalbot/sources/psql/models"
	"legalbot/legalbot/sources/storage"
	"legalbot/legalbot/types"
	"legalbot/legalbot/utils/logging"

	"go.uber.org/zap"
)

var ErrChatNotFound = errors.New("chat not found")

const defaultChatTitle = "Legal Query"

// Generator produces a bot reply from an assembled content list.
type Generator interface {
	Generate(ctx context.Context, contents []llm.Content) (string, error)
}

type ChatController struct {
	chatDAO   *dao.ChatDAO
	fileDAO   *dao.FileDAO
	generator Generator
	// archive is optional; nil disables blob archival of committed files.
	archive *storage.ArchiveClient
}

func NewChatController(chatDAO *dao.ChatDAO, fileDAO *dao.FileDAO, generator Generator, archive *storage.ArchiveClient) *ChatController {
	return &ChatController{
		chatDAO:   chatDAO,
		fileDAO:   fileDAO,
		generator: generator,
		archive:   archive,
	}
}

func (c *ChatController) History(ctx context.Context, userID string) ([]models.Chat, error) {
	return c.chatDAO.ListChatsByUser(ctx, userID)
}

// SharedChat is the public read path: no ownership check, owner identity
// stripped from the response.
func (c *ChatController) SharedChat(ctx context.Context, chatID string) (*models.Chat, error) {
	chat, err := c.chatDAO.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	chat.UserID = ""
	chat.UserName = ""
	return chat, nil
}

// SendMessage runs the pipeline for one incoming message: classify, assemble
// context, invoke generation, persist. Demo requests (empty userID) never
// touch storage and get an ephemeral chat back.
func (c *ChatController) SendMessage(ctx context.Context, userID, userName string, req types.SendMessageRequest) (*models.Chat, error) {
	defer logging.LogDuration(ctx, "chat_send_message")()

	demo := req.Demo || userID == ""

	var chat *models.Chat
	var messages models.Messages
	if req.ChatID != "" && !demo {
		existing, err := c.chatDAO.GetChatByIDAndUser(ctx, req.ChatID, userID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrChatNotFound
		}
		chat = existing
		messages = existing.Messages
	}

	title := req.Title
	if title == "" {
		title = truncateTitle(req.Message)
	}

	now := time.Now()
	userMsg := models.Message{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Text:      req.Message,
		Sender:    models.SenderUser,
		Timestamp: now,
		FileName:  req.FileName,
		Upload:    req.TempFileData,
	}
	if userMsg.Text == "" && req.TempFileData != nil {
		userMsg.Text = fileUploadPlaceholder
	}
	if userMsg.FileName == "" && req.TempFileData != nil {
		userMsg.FileName = req.TempFileData.OriginalName
	}

	// The heuristic filter only applies to plain text messages.
	if req.Message != "" && req.TempFileData == nil {
		res := classifier.Classify(req.Message)
		if res.SmallTalk() {
			messages = append(messages, userMsg, botMessage(classifier.CannedReply(res)))
			return c.persist(ctx, chat, userID, userName, title, messages, demo)
		}
		if res.Kind == classifier.KindOffTopic {
			messages = append(messages, userMsg, botMessage(classifier.OffTopicReply))
			return c.persist(ctx, chat, userID, userName, title, messages, demo)
		}
	}

	messages = append(messages, userMsg)
	userIdx := len(messages) - 1

	contents := c.buildContents(ctx, messages)
	botText, err := c.generator.Generate(ctx, contents)
	if err != nil {
		return nil, err
	}
	messages = append(messages, botMessage(botText))

	// Commit the transient payload only after a real reply, and never for
	// demo or rejected uploads.
	if upload := messages[userIdx].Upload; upload != nil {
		switch {
		case upload.Rejected:
			messages[userIdx].FileName = "File rejected"
			messages[userIdx].Upload = nil
		case !demo && botText != "" && botText != llm.FallbackReply:
			fileID, err := c.commitFile(ctx, userID, upload)
			if err != nil {
				logging.ErrorLogger.Error("store file after bot reply", zap.Error(err))
			} else {
				messages[userIdx].FileID = fileID
				messages[userIdx].Upload = nil
			}
		}
	}

	return c.persist(ctx, chat, userID, userName, title, messages, demo)
}

// DeleteChat removes the chat and every file its messages reference, files
// first so no orphaned records remain.
func (c *ChatController) DeleteChat(ctx context.Context, userID, chatID string) error {
	chat, err := c.chatDAO.GetChatByIDAndUser(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if chat == nil {
		return ErrChatNotFound
	}

	fileIDs := chat.FileIDs()
	if len(fileIDs) > 0 {
		if c.archive != nil {
			files, err := c.fileDAO.GetFilesByIDs(ctx, fileIDs)
			if err != nil {
				return err
			}
			for _, f := range files {
				if f.ObjectKey == "" {
					continue
				}
				if err := c.archive.RemoveFile(ctx, f.ObjectKey); err != nil {
					logging.ErrorLogger.Error("remove archived blob", zap.String("key", f.ObjectKey), zap.Error(err))
				}
			}
		}
		if err := c.fileDAO.DeleteFilesByIDs(ctx, fileIDs); err != nil {
			return err
		}
	}

	return c.chatDAO.DeleteChat(ctx, chatID, userID)
}

func (c *ChatController) commitFile(ctx context.Context, userID string, upload *models.FileUpload) (string, error) {
	file := models.File{
		OriginalName:  upload.OriginalName,
		MimeType:      upload.MimeType,
		Data:          upload.Data,
		ExtractedText: upload.ExtractedText,
		UploadedBy:    userID,
		UploadedAt:    time.Now(),
	}
	if err := c.fileDAO.CreateFile(ctx, &file); err != nil {
		return "", err
	}
	if c.archive != nil {
		key, err := c.archive.ArchiveFile(ctx, file.ID, file.MimeType, file.Data)
		if err != nil {
			logging.ErrorLogger.Error("archive file blob", zap.String("file_id", file.ID), zap.Error(err))
		} else {
			if err := c.fileDAO.SetObjectKey(ctx, file.ID, key); err != nil {
				logging.ErrorLogger.Error("record archive key", zap.String("file_id", file.ID), zap.Error(err))
			}
		}
	}
	return file.ID, nil
}

// persist upserts the chat (insert when new, full-array update when known)
// or, for demo mode, returns an ephemeral chat-shaped object.
func (c *ChatController) persist(ctx context.Context, chat *models.Chat, userID, userName, title string, messages models.Messages, demo bool) (*models.Chat, error) {
	if demo {
		return &models.Chat{Title: title, Messages: messages}, nil
	}

	now := time.Now()
	if chat != nil {
		chat.UserName = userName
		chat.Title = title
		chat.Messages = messages
		chat.UpdatedAt = now
		if err := c.chatDAO.UpdateChat(ctx, chat); err != nil {
			return nil, err
		}
		return c.chatDAO.GetChatByIDAndUser(ctx, chat.ID, userID)
	}

	fresh := &models.Chat{
		UserID:    userID,
		UserName:  userName,
		Title:     title,
		Messages:  messages,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.chatDAO.CreateChat(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func botMessage(text string) models.Message {
	return models.Message{
		ID:        strconv.FormatInt(time.Now().UnixMilli()+1, 10),
		Text:      text,
		Sender:    models.SenderBot,
		Timestamp: time.Now(),
	}
}

func truncateTitle(message string) string {
	if message == "" {
		return defaultChatTitle
	}
	const max = 40
	runes := []rune(message)
	if len(runes) <= max {
		return message
	}
	return string(runes[:max]) + "..."
}
