package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type SocialPlatformRepository struct {
	db *gorm.DB
}

func NewSocialPlatformRepository(db *gorm.DB) *SocialPlatformRepository {
	return &SocialPlatformRepository{db: db}
}

// ListActive 启用中的平台
func (r *SocialPlatformRepository) ListActive(skip, limit int) ([]model.SocialPlatform, int64, error) {
	query := r.db.Model(&model.SocialPlatform{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var platforms []model.SocialPlatform
	if err := query.Order("name").Offset(skip).Limit(limit).Find(&platforms).Error; err != nil {
		return nil, 0, err
	}
	return platforms, total, nil
}

// GetActiveByNames 按名称批量查询启用中的平台
func (r *SocialPlatformRepository) GetActiveByNames(names []string) ([]model.SocialPlatform, error) {
	var platforms []model.SocialPlatform
	err := r.db.Where("name IN ? AND is_active = ?", names, true).Find(&platforms).Error
	return platforms, err
}

type SocialUploadRepository struct {
	db *gorm.DB
}

func NewSocialUploadRepository(db *gorm.DB) *SocialUploadRepository {
	return &SocialUploadRepository{db: db}
}

// CreateBatch 在同一事务中创建多条发布记录
func (r *SocialUploadRepository) CreateBatch(uploads []model.SocialMediaUpload) error {
	if len(uploads) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Video", "Platform").Create(&uploads).Error
	})
}

// GetByID 根据 ID 获取（含视频和平台）
func (r *SocialUploadRepository) GetByID(id int64) (*model.SocialMediaUpload, error) {
	var upload model.SocialMediaUpload
	err := r.db.Preload("Video").Preload("Platform").Where("id = ?", id).First(&upload).Error
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

// GetByIDAndUser 根据 ID + 用户 ID 获取（权限校验用）
func (r *SocialUploadRepository) GetByIDAndUser(id, userID int64) (*model.SocialMediaUpload, error) {
	var upload model.SocialMediaUpload
	err := r.db.Preload("Video").Preload("Platform").
		Where("id = ? AND user_id = ?", id, userID).First(&upload).Error
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

// ListByUser 用户的发布记录（新的在前）
func (r *SocialUploadRepository) ListByUser(userID int64, skip, limit int) ([]model.SocialMediaUpload, int64, error) {
	query := r.db.Model(&model.SocialMediaUpload{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var uploads []model.SocialMediaUpload
	err := query.Preload("Video").Preload("Platform").
		Order("created_at DESC").Offset(skip).Limit(limit).Find(&uploads).Error
	if err != nil {
		return nil, 0, err
	}
	return uploads, total, nil
}

// ActivePlatformIDs 返回视频在哪些平台上已有进行中或已发布的记录
func (r *SocialUploadRepository) ActivePlatformIDs(videoID int64, platformIDs []int64, activeStatuses []string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.SocialMediaUpload{}).
		Where("video_id = ? AND platform_id IN ? AND status IN ?", videoID, platformIDs, activeStatuses).
		Distinct().Pluck("platform_id", &ids).Error
	return ids, err
}

// Update 更新发布记录字段
func (r *SocialUploadRepository) Update(id int64, updates map[string]interface{}) (*model.SocialMediaUpload, error) {
	result := r.db.Model(&model.SocialMediaUpload{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}
