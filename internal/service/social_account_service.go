package service

import (
	"errors"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/pkg/contract"

	"gorm.io/gorm"
)

var (
	ErrSocialAccountNotFound = errors.New("未绑定该平台的社交账号")
	ErrSocialAccountTaken    = errors.New("该社交账号已被其他用户绑定")
)

type SocialAccountService struct {
	accountRepo *repository.SocialAccountRepository
}

func NewSocialAccountService(accountRepo *repository.SocialAccountRepository) *SocialAccountService {
	return &SocialAccountService{accountRepo: accountRepo}
}

// List 当前用户绑定的社交账号
func (s *SocialAccountService) List(userID int64, page, pageSize int) ([]contract.SocialAccount, int64, error) {
	accounts, total, err := s.accountRepo.ListByUser(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]contract.SocialAccount, 0, len(accounts))
	for i := range accounts {
		out = append(out, toContractSocialAccount(&accounts[i]))
	}
	return out, total, nil
}

// Connect 绑定或重新激活社交账号
func (s *SocialAccountService) Connect(userID int64, req *dto.SocialConnectRequest) (*contract.SocialAccount, error) {
	provider, err := contract.ParseProvider(req.Provider)
	if err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.GetByProviderAndSocialID(string(provider), req.SocialID)
	switch {
	case err == nil && existing.UserID != userID:
		return nil, ErrSocialAccountTaken
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	account := &model.SocialAccount{
		UserID:       userID,
		Provider:     string(provider),
		SocialID:     req.SocialID,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	}
	if err := s.accountRepo.Upsert(account); err != nil {
		return nil, err
	}

	saved, err := s.accountRepo.GetByProviderAndSocialID(string(provider), req.SocialID)
	if err != nil {
		return nil, err
	}
	a := toContractSocialAccount(saved)
	return &a, nil
}

// Disconnect 解绑当前用户在该平台的账号
func (s *SocialAccountService) Disconnect(userID int64, provider string) error {
	p, err := contract.ParseProvider(provider)
	if err != nil {
		return err
	}
	n, err := s.accountRepo.DeleteByUserAndProvider(userID, string(p))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSocialAccountNotFound
	}
	return nil
}
