package controllers

import (
	"context"
	"errors"

	"legalbot/legalbot/sources/psql/dao"
	"legalbot/legalbot/sources/psql/models"
	"legalbot/legalbot/sources/storage"
	"legalbot/legalbot/utils/logging"

	"go.uber.org/zap"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUnknownAction = errors.New("unknown action")
)

type UserController struct {
	userDAO *dao.UserDAO
	chatDAO *dao.ChatDAO
	fileDAO *dao.FileDAO
	archive *storage.ArchiveClient
}

func NewUserController(userDAO *dao.UserDAO, chatDAO *dao.ChatDAO, fileDAO *dao.FileDAO, archive *storage.ArchiveClient) *UserController {
	return &UserController{
		userDAO: userDAO,
		chatDAO: chatDAO,
		fileDAO: fileDAO,
		archive: archive,
	}
}

func (c *UserController) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := c.userDAO.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (c *UserController) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return c.userDAO.GetAllUsers(ctx)
}

// AdminAction applies a moderation action to a user. Deactivation is
// destructive: every chat, every file and the account itself are deleted.
func (c *UserController) AdminAction(ctx context.Context, targetID, action string) error {
	user, err := c.userDAO.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	switch action {
	case "block":
		user.Blocked = true
		return c.userDAO.UpdateUser(ctx, user)
	case "unblock":
		user.Blocked = false
		return c.userDAO.UpdateUser(ctx, user)
	case "deactivate":
		return c.deactivate(ctx, user)
	default:
		return ErrUnknownAction
	}
}

func (c *UserController) deactivate(ctx context.Context, user *models.User) error {
	if c.archive != nil {
		files, err := c.fileDAO.GetFilesByUser(ctx, user.ID)
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
	if err := c.fileDAO.DeleteFilesByUser(ctx, user.ID); err != nil {
		return err
	}
	if err := c.chatDAO.DeleteChatsByUser(ctx, user.ID); err != nil {
		return err
	}
	return c.userDAO.DeleteUser(ctx, user.ID)
}
