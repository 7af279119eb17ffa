package dao

import (
	"context"

	"legalbot/legalbot/sources/psql/models"

	"gorm.io/gorm"
)

type ChatDAO struct {
	DB *gorm.DB
}

func NewChatDAO(db *gorm.DB) *ChatDAO {
	return &ChatDAO{DB: db}
}

// GetChatByIDAndUser returns nil when the chat does not exist or belongs to
// another user; the two cases are deliberately indistinguishable.
func (dao *ChatDAO) GetChatByIDAndUser(ctx context.Context, id, userID string) (*models.Chat, error) {
	var chat models.Chat
	err := dao.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&chat).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetChatByID is the shared read path: no ownership check. Callers must
// strip owner identity before returning the chat to the public.
func (dao *ChatDAO) GetChatByID(ctx context.Context, id string) (*models.Chat, error) {
	var chat models.Chat
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&chat).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (dao *ChatDAO) ListChatsByUser(ctx context.Context, userID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (dao *ChatDAO) CreateChat(ctx context.Context, chat *models.Chat) error {
	return dao.DB.WithContext(ctx).Create(chat).Error
}

// UpdateChat replaces the full message array and metadata, scoped to the
// owning user. Last write wins at the chat level.
func (dao *ChatDAO) UpdateChat(ctx context.Context, chat *models.Chat) error {
	return dao.DB.WithContext(ctx).
		Model(&models.Chat{}).
		Where("id = ? AND user_id = ?", chat.ID, chat.UserID).
		Updates(map[string]interface{}{
			"user_name":  chat.UserName,
			"title":      chat.Title,
			"messages":   chat.Messages,
			"updated_at": chat.UpdatedAt,
		}).Error
}

func (dao *ChatDAO) DeleteChat(ctx context.Context, id, userID string) error {
	return dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Chat{}).Error
}

// DeleteChatsByUser removes every chat owned by the user. Used by admin
// deactivation.
func (dao *ChatDAO) DeleteChatsByUser(ctx context.Context, userID string) error {
	return dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Chat{}).Error
}
