package service

import (
	"errors"
	"strings"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/config"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/contract"
	"vidshare-go/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailExists       = errors.New("该邮箱已被注册")
	ErrInvalidCredential = errors.New("邮箱或密码错误")
	ErrPasswordTooShort  = errors.New("密码长度不能少于 8 位")
)

type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 用户注册
func (s *AuthService) Register(req contract.RegisterData) (*contract.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	email := normalizeEmail(req.Email)
	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	u := toContractUser(user)
	return &u, nil
}

// Login 用户登录，返回 token 数据
func (s *AuthService) Login(req contract.LoginCredentials) (*dto.TokenData, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int(config.GetJWT().ExpireDuration().Seconds()),
		User:      toContractUser(user),
	}, nil
}

// GetProfile 当前用户资料
func (s *AuthService) GetProfile(userID int64) (*contract.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u := toContractUser(user)
	return &u, nil
}

// UpdateProfile 更新个人资料，空字符串会清空 bio / profile_picture
func (s *AuthService) UpdateProfile(userID int64, req *dto.ProfileUpdateRequest) (*contract.User, error) {
	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Bio != nil {
		updates["bio"] = nullableString(*req.Bio)
	}
	if req.ProfilePicture != nil {
		updates["profile_picture"] = nullableString(*req.ProfilePicture)
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u := toContractUser(user)
	return &u, nil
}

func nullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
