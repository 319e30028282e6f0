package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/testutil"
)

func setupProvider(t *testing.T) (*identity.GormProvider, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return identity.NewGormProvider(db), db
}

func TestGormProvider_EnsureRoles_Idempotent(t *testing.T) {
	provider, db := setupProvider(t)

	// SetupTestDB 已经初始化过一次，重复调用不产生重复行
	require.NoError(t, provider.EnsureRoles())
	require.NoError(t, provider.EnsureRoles())

	var count int64
	db.Model(&model.Role{}).Count(&count)
	assert.Equal(t, int64(4), count)
}

func TestGormProvider_AddToRole(t *testing.T) {
	provider, db := setupProvider(t)

	user := testutil.TestUser(t, db)

	require.NoError(t, provider.AddToRole(user.ID, model.RoleMember))

	in, err := provider.IsInRole(user.ID, model.RoleMember)
	require.NoError(t, err)
	assert.True(t, in)

	// 重复赋予幂等
	require.NoError(t, provider.AddToRole(user.ID, model.RoleMember))

	var count int64
	db.Model(&model.UserRole{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// 不存在的角色报错
	assert.Error(t, provider.AddToRole(user.ID, "nonexistent"))
}

func TestGormProvider_RemoveFromRole(t *testing.T) {
	provider, db := setupProvider(t)

	user := testutil.TestUser(t, db)
	require.NoError(t, provider.AddToRole(user.ID, model.RoleMember))

	require.NoError(t, provider.RemoveFromRole(user.ID, model.RoleMember))

	in, err := provider.IsInRole(user.ID, model.RoleMember)
	require.NoError(t, err)
	assert.False(t, in)

	// 本来就没有该角色时视为成功
	require.NoError(t, provider.RemoveFromRole(user.ID, model.RoleMember))
	require.NoError(t, provider.RemoveFromRole(user.ID, "nonexistent"))
}

func TestGormProvider_ListRoles(t *testing.T) {
	provider, db := setupProvider(t)

	user := testutil.TestUser(t, db)
	require.NoError(t, provider.AddToRole(user.ID, model.RoleUser))
	require.NoError(t, provider.AddToRole(user.ID, model.RoleAdmin))

	roles, err := provider.ListRoles(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.RoleUser, model.RoleAdmin}, roles)

	roles, err = provider.ListRoles(99999)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestGormProvider_UsersInRole(t *testing.T) {
	provider, db := setupProvider(t)

	a := testutil.TestUser(t, db, testutil.WithEmail("a@example.com"))
	b := testutil.TestUser(t, db, testutil.WithEmail("b@example.com"))
	testutil.TestUser(t, db, testutil.WithEmail("c@example.com"))
	require.NoError(t, provider.AddToRole(b.ID, model.RoleAdmin))
	require.NoError(t, provider.AddToRole(a.ID, model.RoleAdmin))

	users, err := provider.UsersInRole(model.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, users, 2)
	// 邮箱升序
	assert.Equal(t, a.ID, users[0].ID)
	assert.Equal(t, b.ID, users[1].ID)

	users, err = provider.UsersInRole("nonexistent")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestGormProvider_FindUser(t *testing.T) {
	provider, db := setupProvider(t)

	user := testutil.TestUser(t, db, testutil.WithEmail("find@example.com"))

	found, err := provider.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	found, err = provider.FindUserByEmail("find@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = provider.FindUserByID(99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
