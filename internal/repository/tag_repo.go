package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// List 标签分页列表（按名称排序）
func (r *TagRepository) List(skip, limit int) ([]model.Tag, int64, error) {
	query := r.db.Model(&model.Tag{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tags []model.Tag
	if err := query.Order("name").Offset(skip).Limit(limit).Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

// EnsureByNames 按名称取出标签，不存在的先创建。names 需已规范化、去重。
// 返回值 created 表示是否有新标签写入。
func (r *TagRepository) EnsureByNames(names []string) (tags []model.Tag, created bool, err error) {
	if len(names) == 0 {
		return nil, false, nil
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		rows := make([]model.Tag, 0, len(names))
		for _, n := range names {
			rows = append(rows, model.Tag{Name: n})
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&rows)
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return tx.Where("name IN ?", names).Order("name").Find(&tags).Error
	})
	return tags, created, err
}
