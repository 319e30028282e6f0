package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/repository"
	"github.com/vbook/vbook_go_server/internal/testutil"
)

func setupAdminService(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return NewAdminService(
		repository.NewUserRepository(db),
		identity.NewGormProvider(db),
	), db
}

func TestAdminService_ListUsers_Search(t *testing.T) {
	service, db := setupAdminService(t)

	target := testutil.TestUser(t, db, testutil.WithEmail("alice@example.com"))
	testutil.TestUser(t, db, testutil.WithEmail("bob@example.com"))

	items, total, err := service.ListUsers(&dto.UserListRequest{
		SearchTerm: "alice",
		Page:       1,
		PageSize:   30,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, target.ID, items[0].ID)
}

func TestAdminService_EditUser(t *testing.T) {
	service, db := setupAdminService(t)

	user := testutil.TestUser(t, db)

	name := "后台改名"
	phone := "13800000000"
	require.NoError(t, service.EditUser(user.ID, &dto.EditUserRequest{
		FullName:    &name,
		PhoneNumber: &phone,
	}))

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, "后台改名", reloaded.FullName)
	assert.Equal(t, "13800000000", reloaded.PhoneNumber)

	assert.ErrorIs(t, service.EditUser(99999, &dto.EditUserRequest{FullName: &name}), ErrUserNotFound)
}

func TestAdminService_DeleteUser_SuperAdminProtected(t *testing.T) {
	service, db := setupAdminService(t)

	super := testutil.TestUser(t, db)
	testutil.GrantRole(t, db, super.ID, model.RoleSuperAdmin)

	assert.ErrorIs(t, service.DeleteUser(super.ID), ErrCannotEditSuper)

	normal := testutil.TestUser(t, db)
	require.NoError(t, service.DeleteUser(normal.ID))
	assert.ErrorIs(t, service.DeleteUser(normal.ID), ErrUserNotFound)
}

func TestAdminService_CreateAdmin(t *testing.T) {
	service, db := setupAdminService(t)

	item, err := service.CreateAdmin(&dto.CreateAdminRequest{
		Email:    "admin@example.com",
		Password: "password123",
		FullName: "管理员",
	})
	require.NoError(t, err)
	assert.Contains(t, item.Roles, model.RoleUser)
	assert.Contains(t, item.Roles, model.RoleAdmin)

	isAdmin, err := identity.NewGormProvider(db).IsInRole(item.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	_, err = service.CreateAdmin(&dto.CreateAdminRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAdminService_ListAdmins(t *testing.T) {
	service, db := setupAdminService(t)

	testutil.TestUser(t, db) // 普通用户不出现在管理员列表
	admin := testutil.TestUser(t, db)
	testutil.GrantRole(t, db, admin.ID, model.RoleAdmin)

	items, err := service.ListAdmins()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, admin.ID, items[0].ID)
}

func TestAdminService_UpdateAdmin(t *testing.T) {
	service, db := setupAdminService(t)

	admin := testutil.TestUser(t, db)
	testutil.GrantRole(t, db, admin.ID, model.RoleAdmin)

	name := "新管理员名"
	require.NoError(t, service.UpdateAdmin(admin.ID, &dto.UpdateAdminRequest{FullName: &name}))

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, admin.ID).Error)
	assert.Equal(t, "新管理员名", reloaded.FullName)

	// 非管理员账号拒绝
	normal := testutil.TestUser(t, db)
	assert.ErrorIs(t, service.UpdateAdmin(normal.ID, &dto.UpdateAdminRequest{FullName: &name}), ErrNotAdmin)

	// 超级管理员账号拒绝
	super := testutil.TestUser(t, db)
	testutil.GrantRole(t, db, super.ID, model.RoleAdmin)
	testutil.GrantRole(t, db, super.ID, model.RoleSuperAdmin)
	assert.ErrorIs(t, service.UpdateAdmin(super.ID, &dto.UpdateAdminRequest{FullName: &name}), ErrCannotEditSuper)
}

func TestAdminService_DeleteAdmin(t *testing.T) {
	service, db := setupAdminService(t)

	admin := testutil.TestUser(t, db)
	testutil.GrantRole(t, db, admin.ID, model.RoleAdmin)

	require.NoError(t, service.DeleteAdmin(admin.ID))

	var count int64
	db.Model(&model.User{}).Where("id = ?", admin.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	normal := testutil.TestUser(t, db)
	assert.ErrorIs(t, service.DeleteAdmin(normal.ID), ErrNotAdmin)

	super := testutil.TestUser(t, db)
	testutil.GrantRole(t, db, super.ID, model.RoleAdmin)
	testutil.GrantRole(t, db, super.ID, model.RoleSuperAdmin)
	assert.ErrorIs(t, service.DeleteAdmin(super.ID), ErrCannotEditSuper)
}
