package identity

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
)

// GormProvider 基于 gorm 角色表的 Provider 实现
type GormProvider struct {
	db *gorm.DB
}

func NewGormProvider(db *gorm.DB) *GormProvider {
	return &GormProvider{db: db}
}

// EnsureRoles 初始化内置角色，已存在则跳过
func (p *GormProvider) EnsureRoles() error {
	names := []string{model.RoleUser, model.RoleMember, model.RoleAdmin, model.RoleSuperAdmin}
	for _, name := range names {
		var role model.Role
		err := p.db.Where("name = ?", name).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := p.db.Create(&model.Role{Name: name}).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *GormProvider) FindUserByID(id int64) (*model.User, error) {
	var user model.User
	if err := p.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *GormProvider) FindUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := p.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *GormProvider) roleByName(name string) (*model.Role, error) {
	var role model.Role
	if err := p.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (p *GormProvider) IsInRole(userID int64, roleName string) (bool, error) {
	role, err := p.roleByName(roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	var count int64
	err = p.db.Model(&model.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, role.ID).
		Count(&count).Error
	return count > 0, err
}

// AddToRole 赋予角色，重复赋予视为成功（幂等，可安全重试）
func (p *GormProvider) AddToRole(userID int64, roleName string) error {
	role, err := p.roleByName(roleName)
	if err != nil {
		return err
	}

	in, err := p.IsInRole(userID, roleName)
	if err != nil {
		return err
	}
	if in {
		return nil
	}

	return p.db.Create(&model.UserRole{UserID: userID, RoleID: role.ID}).Error
}

// RemoveFromRole 移除角色，本来就没有该角色时视为成功
func (p *GormProvider) RemoveFromRole(userID int64, roleName string) error {
	role, err := p.roleByName(roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return p.db.Where("user_id = ? AND role_id = ?", userID, role.ID).
		Delete(&model.UserRole{}).Error
}

func (p *GormProvider) ListRoles(userID int64) ([]string, error) {
	var names []string
	err := p.db.Model(&model.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	return names, err
}

func (p *GormProvider) UsersInRole(roleName string) ([]*model.User, error) {
	role, err := p.roleByName(roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var users []*model.User
	err = p.db.Model(&model.User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role_id = ?", role.ID).
		Order("users.email ASC").
		Find(&users).Error
	return users, err
}
