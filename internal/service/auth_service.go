package service

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/config"
	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/pkg/jwt"
	"github.com/vbook/vbook_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrWrongPassword      = errors.New("当前密码错误")
)

type AuthService struct {
	userRepo *repository.UserRepository
	identity identity.Provider
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, provider identity.Provider, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		identity: provider,
		cfg:      cfg,
	}
}

// Register 用户注册。勾选 WithVip 时赠送 1 个月会员。
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		Email:            req.Email,
		PasswordHash:     string(hashedPassword),
		FullName:         req.FullName,
		RegistrationDate: now,
	}

	if req.WithVip {
		expiry := model.ExtendExpiry(nil, 1, now)
		user.IsMember = true
		user.SubscriptionExpiresAt = &expiry
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.identity.AddToRole(user.ID, model.RoleUser); err != nil {
		return nil, err
	}
	if user.IsMember {
		if err := s.identity.AddToRole(user.ID, model.RoleMember); err != nil {
			return nil, err
		}
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	info, err := s.buildUserInfo(user)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Token: token,
		User:  info,
	}, nil
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	info, err := s.buildUserInfo(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  info,
	}, nil
}

// Profile 获取个人资料
func (s *AuthService) Profile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.buildUserInfo(user)
}

// UpdateProfile 更新个人资料
func (s *AuthService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return s.buildUserInfo(user)
}

// ChangePassword 修改密码，需验证当前密码
func (s *AuthService) ChangePassword(userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdateFields(userID, map[string]interface{}{
		"password_hash": string(hashedPassword),
	})
}

func (s *AuthService) buildUserInfo(user *model.User) (*dto.UserInfo, error) {
	roles, err := s.identity.ListRoles(user.ID)
	if err != nil {
		return nil, err
	}

	info := &dto.UserInfo{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		PhoneNumber:      user.PhoneNumber,
		Address:          user.Address,
		IsMember:         user.IsMember,
		Roles:            roles,
		RegistrationDate: user.RegistrationDate.Format(time.RFC3339),
	}

	now := time.Now()
	switch {
	case user.VipActive(now):
		info.VipStatusText = "VIP 会员"
		if user.SubscriptionExpiresAt != nil {
			info.SubscriptionExpiresAt = user.SubscriptionExpiresAt.Format(time.RFC3339)
			info.VipExpiryText = user.SubscriptionExpiresAt.Format("2006-01-02")
		} else {
			info.VipExpiryText = "永久"
		}
	case user.IsMember:
		info.VipStatusText = "会员已过期"
		if user.SubscriptionExpiresAt != nil {
			info.SubscriptionExpiresAt = user.SubscriptionExpiresAt.Format(time.RFC3339)
			info.VipExpiryText = user.SubscriptionExpiresAt.Format("2006-01-02")
		}
	default:
		info.VipStatusText = "普通用户"
	}

	return info, nil
}
