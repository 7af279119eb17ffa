package dao

import (
	"context"

	"legalbot/legalbot/sources/psql/models"

	"gorm.io/gorm"
)

type FileDAO struct {
	DB *gorm.DB
}

func NewFileDAO(db *gorm.DB) *FileDAO {
	return &FileDAO{DB: db}
}

func (dao *FileDAO) CreateFile(ctx context.Context, file *models.File) error {
	return dao.DB.WithContext(ctx).Create(file).Error
}

func (dao *FileDAO) GetFileByID(ctx context.Context, id string) (*models.File, error) {
	var file models.File
	err := dao.DB.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (dao *FileDAO) GetFilesByIDs(ctx context.Context, ids []string) ([]models.File, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var files []models.File
	err := dao.DB.WithContext(ctx).Where("id IN ?", ids).Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (dao *FileDAO) SetObjectKey(ctx context.Context, id, key string) error {
	return dao.DB.WithContext(ctx).
		Model(&models.File{}).
		Where("id = ?", id).
		Update("object_key", key).Error
}

func (dao *FileDAO) DeleteFilesByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return dao.DB.WithContext(ctx).Where("id IN ?", ids).Delete(&models.File{}).Error
}

func (dao *FileDAO) GetFilesByUser(ctx context.Context, userID string) ([]models.File, error) {
	var files []models.File
	err := dao.DB.WithContext(ctx).Where("uploaded_by = ?", userID).Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (dao *FileDAO) DeleteFilesByUser(ctx context.Context, userID string) error {
	return dao.DB.WithContext(ctx).Where("uploaded_by = ?", userID).Delete(&models.File{}).Error
}
