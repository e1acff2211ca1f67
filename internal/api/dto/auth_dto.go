package dto

import "vidshare-go/pkg/contract"

// TokenData 登录成功返回的 Token 信息
type TokenData struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	ExpiresIn int           `json:"expires_in"`
	User      contract.User `json:"user"`
}

// ProfileUpdateRequest 个人资料更新请求
type ProfileUpdateRequest struct {
	FirstName      *string `json:"first_name" binding:"omitempty,min=1,max=30"`
	LastName       *string `json:"last_name" binding:"omitempty,min=1,max=30"`
	Bio            *string `json:"bio" binding:"omitempty,max=500"`
	ProfilePicture *string `json:"profile_picture" binding:"omitempty,url,max=500"`
}

// SocialConnectRequest 绑定社交账号
type SocialConnectRequest struct {
	Provider     string  `json:"provider" binding:"required"`
	SocialID     string  `json:"social_id" binding:"required,max=255"`
	AccessToken  string  `json:"access_token" binding:"required"`
	RefreshToken *string `json:"refresh_token"`
}
