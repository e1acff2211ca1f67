package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
)

type ProcessingTaskRepository struct {
	db *gorm.DB
}

func NewProcessingTaskRepository(db *gorm.DB) *ProcessingTaskRepository {
	return &ProcessingTaskRepository{db: db}
}

// Create 创建处理任务
func (r *ProcessingTaskRepository) Create(task *model.VideoProcessingTask) error {
	return r.db.Create(task).Error
}

// GetByID 根据 ID 获取任务
func (r *ProcessingTaskRepository) GetByID(id int64) (*model.VideoProcessingTask, error) {
	var task model.VideoProcessingTask
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByVideo 视频的全部任务（按创建时间）
func (r *ProcessingTaskRepository) ListByVideo(videoID int64) ([]model.VideoProcessingTask, error) {
	var tasks []model.VideoProcessingTask
	err := r.db.Where("video_id = ?", videoID).Order("created_at, id").Find(&tasks).Error
	return tasks, err
}

// LatestByVideoAndType 某类型最近一次任务
func (r *ProcessingTaskRepository) LatestByVideoAndType(videoID int64, taskType string) (*model.VideoProcessingTask, error) {
	var task model.VideoProcessingTask
	err := r.db.Where("video_id = ? AND task_type = ?", videoID, taskType).
		Order("created_at DESC, id DESC").First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update 更新任务字段
func (r *ProcessingTaskRepository) Update(id int64, updates map[string]interface{}) (*model.VideoProcessingTask, error) {
	result := r.db.Model(&model.VideoProcessingTask{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// DeleteByVideoAndStatus 重试前清除失败/已取消的任务
func (r *ProcessingTaskRepository) DeleteByVideoAndStatus(videoID int64, statuses []string) (int64, error) {
	result := r.db.Where("video_id = ? AND status IN ?", videoID, statuses).
		Delete(&model.VideoProcessingTask{})
	return result.RowsAffected, result.Error
}

// CancelActiveByVideo 将未结束的任务标记为已取消
func (r *ProcessingTaskRepository) CancelActiveByVideo(videoID int64) (int64, error) {
	result := r.db.Model(&model.VideoProcessingTask{}).
		Where("video_id = ? AND status IN ?", videoID, []string{model.TaskStatusPending, model.TaskStatusProcessing}).
		Update("status", model.TaskStatusCancelled)
	return result.RowsAffected, result.Error
}
