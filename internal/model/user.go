package model

import (
	"time"
)

type User struct {
	ID                    int64      `gorm:"primaryKey" json:"id"`
	Email                 string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash          string     `gorm:"size:255;not null" json:"-"`
	FullName              string     `gorm:"size:100" json:"full_name"`
	PhoneNumber           string     `gorm:"size:20" json:"phone_number"`
	Address               string     `gorm:"size:500" json:"address"`
	IsMember              bool       `gorm:"default:false" json:"is_member"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	RegistrationDate      time.Time  `gorm:"not null" json:"registration_date"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// VipActive 会员是否有效：过期时间为空视为永久会员（历史数据）
func (u *User) VipActive(now time.Time) bool {
	if !u.IsMember {
		return false
	}
	return u.SubscriptionExpiresAt == nil || u.SubscriptionExpiresAt.After(now)
}
