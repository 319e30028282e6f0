package model

// 角色名称常量
const (
	RoleUser       = "user"
	RoleMember     = "member"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type Role struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

type UserRole struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex:idx_user_role" json:"user_id"`
	RoleID int64 `gorm:"not null;uniqueIndex:idx_user_role" json:"role_id"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
