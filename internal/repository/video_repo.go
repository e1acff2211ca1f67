package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频（含标签）
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Tags").Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDAndUser 根据视频 ID + 用户 ID 查询（权限校验用）
func (r *VideoRepository) GetByIDAndUser(videoID, userID int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Tags").Where("id = ? AND user_id = ?", videoID, userID).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDs 批量获取视频，不保证顺序
func (r *VideoRepository) GetByIDs(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Tags").Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// Create 创建视频记录，同时写入标签关联
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update 更新视频字段
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// UpdateStatusIf 仅当当前状态为 from 时更新为 to（乐观并发），返回是否更新
func (r *VideoRepository) UpdateStatusIf(id int64, from, to string, extra map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	result := r.db.Model(&model.Video{}).Where("id = ? AND status = ?", id, from).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReplaceTags 用给定标签集合替换视频标签
func (r *VideoRepository) ReplaceTags(video *model.Video, tags []model.Tag) error {
	return r.db.Model(video).Association("Tags").Replace(tags)
}

// Delete 删除视频及其标签关联和处理任务
func (r *VideoRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		video := model.Video{ID: id}
		if err := tx.Model(&video).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.VideoProcessingTask{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Video{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByUser 用户自己的视频列表（新的在前）
func (r *VideoRepository) ListByUser(userID int64, skip, limit int) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Preload("Tags").Order("created_at DESC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// SearchPublic 公开且就绪的视频，按标题/描述/转写文本模糊匹配
func (r *VideoRepository) SearchPublic(search string, skip, limit int) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).Where("is_public = ? AND status = ?", true, model.VideoStatusReady)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR transcription ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Preload("Tags").Order("created_at DESC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListPublicReady 批量同步到搜索索引时使用
func (r *VideoRepository) ListPublicReady(skip, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Tags").
		Where("is_public = ? AND status = ?", true, model.VideoStatusReady).
		Order("id").Offset(skip).Limit(limit).Find(&videos).Error
	return videos, err
}
