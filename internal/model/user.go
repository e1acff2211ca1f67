package model

import "time"

// User 用户模型
type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Email          string    `gorm:"size:254;not null;uniqueIndex;comment:登录邮箱" json:"email"`
	Password       string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	FirstName      string    `gorm:"size:30;not null;comment:名" json:"first_name"`
	LastName       string    `gorm:"size:30;not null;comment:姓" json:"last_name"`
	ProfilePicture *string   `gorm:"size:500;comment:头像地址" json:"profile_picture"`
	Bio            *string   `gorm:"size:500;comment:个人简介" json:"bio"`
	IsVerified     bool      `gorm:"not null;default:false;comment:邮箱是否验证" json:"is_verified"`
	CreatedAt      time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Videos         []Video         `gorm:"foreignKey:UserID" json:"videos,omitempty"`
	SocialAccounts []SocialAccount `gorm:"foreignKey:UserID" json:"social_accounts,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// SocialAccount 用户绑定的第三方平台账号
type SocialAccount struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;index:idx_social_accounts_user_id;comment:所属用户" json:"user_id"`
	Provider     string    `gorm:"size:20;not null;uniqueIndex:uq_provider_social_id,priority:1;comment:平台" json:"provider"`
	SocialID     string    `gorm:"size:255;not null;uniqueIndex:uq_provider_social_id,priority:2;comment:平台侧用户ID" json:"social_id"`
	AccessToken  string    `gorm:"type:text;not null" json:"-"`
	RefreshToken *string   `gorm:"type:text" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
