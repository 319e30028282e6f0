package service

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/repository"
)

var (
	ErrNotAdmin        = errors.New("该账号不是管理员")
	ErrCannotEditSuper = errors.New("不能修改超级管理员账号")
)

// AdminService 后台用户与管理员账号管理。
// 管理员账号的增删只有超级管理员能操作，路由层把关。
type AdminService struct {
	userRepo *repository.UserRepository
	identity identity.Provider
}

func NewAdminService(userRepo *repository.UserRepository, provider identity.Provider) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		identity: provider,
	}
}

// ListUsers 后台用户列表，支持邮箱/姓名搜索
func (s *AdminService) ListUsers(req *dto.UserListRequest) ([]*dto.AdminUserItem, int64, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 30
	}

	users, total, err := s.userRepo.List(req.SearchTerm, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.AdminUserItem, 0, len(users))
	for _, u := range users {
		item, err := s.toAdminItem(u)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

// GetUser 后台用户详情
func (s *AdminService) GetUser(userID int64) (*dto.AdminUserItem, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.toAdminItem(user)
}

// EditUser 后台编辑用户联系信息
func (s *AdminService) EditUser(userID int64, req *dto.EditUserRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
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

	return s.userRepo.Update(user)
}

// DeleteUser 删除用户账号
func (s *AdminService) DeleteUser(userID int64) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// 超级管理员账号不可删除
	isSuper, err := s.identity.IsInRole(userID, model.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if isSuper {
		return ErrCannotEditSuper
	}

	return s.userRepo.Delete(userID)
}

// ListAdmins 管理员账号列表（超级管理员视角）
func (s *AdminService) ListAdmins() ([]*dto.AdminUserItem, error) {
	admins, err := s.identity.UsersInRole(model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AdminUserItem, 0, len(admins))
	for _, u := range admins {
		item, err := s.toAdminItem(u)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// CreateAdmin 创建管理员账号
func (s *AdminService) CreateAdmin(req *dto.CreateAdminRequest) (*dto.AdminUserItem, error) {
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

	user := &model.User{
		Email:            req.Email,
		PasswordHash:     string(hashedPassword),
		FullName:         req.FullName,
		RegistrationDate: time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.identity.AddToRole(user.ID, model.RoleUser); err != nil {
		return nil, err
	}
	if err := s.identity.AddToRole(user.ID, model.RoleAdmin); err != nil {
		return nil, err
	}

	return s.toAdminItem(user)
}

// UpdateAdmin 更新管理员账号，超级管理员账号除外
func (s *AdminService) UpdateAdmin(userID int64, req *dto.UpdateAdminRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	isAdmin, err := s.identity.IsInRole(userID, model.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}

	isSuper, err := s.identity.IsInRole(userID, model.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if isSuper {
		return ErrCannotEditSuper
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.NewPassword != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hashedPassword)
	}

	return s.userRepo.Update(user)
}

// DeleteAdmin 移除管理员：撤销角色并删除账号
func (s *AdminService) DeleteAdmin(userID int64) error {
	isAdmin, err := s.identity.IsInRole(userID, model.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}

	isSuper, err := s.identity.IsInRole(userID, model.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if isSuper {
		return ErrCannotEditSuper
	}

	if err := s.identity.RemoveFromRole(userID, model.RoleAdmin); err != nil {
		return err
	}
	return s.userRepo.Delete(userID)
}

func (s *AdminService) toAdminItem(user *model.User) (*dto.AdminUserItem, error) {
	roles, err := s.identity.ListRoles(user.ID)
	if err != nil {
		return nil, err
	}

	item := &dto.AdminUserItem{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		IsMember:         user.IsMember,
		RegistrationDate: user.RegistrationDate.Format(time.RFC3339),
		Roles:            roles,
	}
	if user.SubscriptionExpiresAt != nil {
		item.SubscriptionExpiresAt = user.SubscriptionExpiresAt.Format(time.RFC3339)
	}
	return item, nil
}
