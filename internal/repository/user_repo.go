package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.User{}).Error
}

// List 分页获取用户，searchTerm 匹配邮箱或姓名
func (r *UserRepository) List(searchTerm string, page, pageSize int) ([]*model.User, int64, error) {
	query := r.db.Model(&model.User{})

	if searchTerm != "" {
		like := "%" + searchTerm + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*model.User
	offset := (page - 1) * pageSize
	err := query.Order("registration_date DESC").Offset(offset).Limit(pageSize).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

// CountRegisteredBetween 统计 [from, to) 区间内注册的用户数
func (r *UserRepository) CountRegisteredBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("registration_date >= ? AND registration_date < ?", from, to).
		Count(&count).Error
	return count, err
}

// CountActiveVip 统计当前有效的 VIP 用户（含无到期时间的永久会员）
func (r *UserRepository) CountActiveVip(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("is_member = ? AND (subscription_expires_at IS NULL OR subscription_expires_at > ?)", true, now).
		Count(&count).Error
	return count, err
}
