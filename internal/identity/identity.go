package identity

import (
	"github.com/vbook/vbook_go_server/internal/model"
)

// Provider 身份信息提供方。角色只是 IsMember/到期时间的缓存投影，
// 业务侧通过该接口读写，不直接操作角色表。
type Provider interface {
	FindUserByID(id int64) (*model.User, error)
	FindUserByEmail(email string) (*model.User, error)
	IsInRole(userID int64, roleName string) (bool, error)
	AddToRole(userID int64, roleName string) error
	RemoveFromRole(userID int64, roleName string) error
	ListRoles(userID int64) ([]string, error)
	UsersInRole(roleName string) ([]*model.User, error)
}
