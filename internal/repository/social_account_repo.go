package repository

import (
	"vidshare-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialAccountRepository struct {
	db *gorm.DB
}

func NewSocialAccountRepository(db *gorm.DB) *SocialAccountRepository {
	return &SocialAccountRepository{db: db}
}

// ListByUser 获取用户绑定的账号
func (r *SocialAccountRepository) ListByUser(userID int64, skip, limit int) ([]model.SocialAccount, int64, error) {
	query := r.db.Model(&model.SocialAccount{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []model.SocialAccount
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// GetByProviderAndSocialID 按平台侧身份查询
func (r *SocialAccountRepository) GetByProviderAndSocialID(provider, socialID string) (*model.SocialAccount, error) {
	var account model.SocialAccount
	err := r.db.Where("provider = ? AND social_id = ?", provider, socialID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Upsert 按 (provider, social_id) 插入或更新绑定，并重新激活
func (r *SocialAccountRepository) Upsert(account *model.SocialAccount) error {
	account.IsActive = true
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "social_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "access_token", "refresh_token", "is_active", "updated_at"}),
	}).Create(account).Error
}

// DeleteByUserAndProvider 解除用户在某个平台的全部绑定，返回删除条数
func (r *SocialAccountRepository) DeleteByUserAndProvider(userID int64, provider string) (int64, error) {
	result := r.db.Where("user_id = ? AND provider = ?", userID, provider).Delete(&model.SocialAccount{})
	return result.RowsAffected, result.Error
}
