package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type YouTubeDownloadRepository struct {
	db *gorm.DB
}

func NewYouTubeDownloadRepository(db *gorm.DB) *YouTubeDownloadRepository {
	return &YouTubeDownloadRepository{db: db}
}

func (r *YouTubeDownloadRepository) Create(download *model.YouTubeDownload) error {
	return r.db.Create(download).Error
}

func (r *YouTubeDownloadRepository) GetByID(id int64) (*model.YouTubeDownload, error) {
	var download model.YouTubeDownload
	if err := r.db.Where("id = ?", id).First(&download).Error; err != nil {
		return nil, err
	}
	return &download, nil
}

// ListByUser 用户的下载请求（新的在前）
func (r *YouTubeDownloadRepository) ListByUser(userID int64, skip, limit int) ([]model.YouTubeDownload, int64, error) {
	query := r.db.Model(&model.YouTubeDownload{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var downloads []model.YouTubeDownload
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&downloads).Error
	if err != nil {
		return nil, 0, err
	}
	return downloads, total, nil
}

func (r *YouTubeDownloadRepository) Update(id int64, updates map[string]interface{}) (*model.YouTubeDownload, error) {
	result := r.db.Model(&model.YouTubeDownload{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// UpdateUnlessStatus 仅当当前状态不是 status 时更新，返回是否更新。
// 用于完成事件的认领：并发重复投递时只有一方能把状态改为 completed。
func (r *YouTubeDownloadRepository) UpdateUnlessStatus(id int64, status string, updates map[string]interface{}) (bool, error) {
	result := r.db.Model(&model.YouTubeDownload{}).
		Where("id = ? AND status <> ?", id, status).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
