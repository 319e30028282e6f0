package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/repository"
	"github.com/vbook/vbook_go_server/internal/testutil"
)

func TestEntitlementService_CanRead_FreeBook(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db)
	chapter := testutil.TestChapter(t, db, book.ID, 1)

	// 免费书籍未登录也能读
	assert.NoError(t, service.CanRead(0, book, chapter))
}

func TestEntitlementService_CanRead_PremiumBookAnonymous(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1)

	err := service.CanRead(0, book, chapter)
	assert.ErrorIs(t, err, ErrVipRequired)
}

func TestEntitlementService_CanRead_FreeChapterOfPremiumBook(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1, testutil.WithFreeChapter())

	// VIP 书籍的试读章节对所有人开放
	assert.NoError(t, service.CanRead(0, book, chapter))
}

func TestEntitlementService_CanRead_ActiveVip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1)

	expiry := time.Now().AddDate(0, 1, 0)
	user := testutil.TestUser(t, db, testutil.WithVip(&expiry))

	assert.NoError(t, service.CanRead(user.ID, book, chapter))
}

func TestEntitlementService_CanRead_LifetimeVip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1)

	// 到期时间为空表示永久会员
	user := testutil.TestUser(t, db, testutil.WithVip(nil))

	assert.NoError(t, service.CanRead(user.ID, book, chapter))
}

func TestEntitlementService_CanRead_ExpiredVip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1)

	user := testutil.TestUser(t, db, testutil.WithExpiredVip())

	err := service.CanRead(user.ID, book, chapter)
	assert.ErrorIs(t, err, ErrVipRequired)
}

func TestEntitlementService_CanRead_MemberRoleDoesNotBypassExpiry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1)

	// 角色表里还挂着 member，但订阅已过期
	user := testutil.TestUser(t, db, testutil.WithExpiredVip())
	testutil.GrantRole(t, db, user.ID, model.RoleMember)

	err := service.CanRead(user.ID, book, chapter)
	assert.ErrorIs(t, err, ErrVipRequired)
}

func TestEntitlementService_CanRead_AdminOverride(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1)

	admin := testutil.TestUser(t, db)
	testutil.GrantRole(t, db, admin.ID, model.RoleAdmin)

	assert.NoError(t, service.CanRead(admin.ID, book, chapter))

	super := testutil.TestUser(t, db)
	testutil.GrantRole(t, db, super.ID, model.RoleSuperAdmin)

	assert.NoError(t, service.CanRead(super.ID, book, chapter))
}

func TestEntitlementService_CanRead_StoreFailureDenies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1)
	user := testutil.TestUser(t, db)

	// 用户表不可用时按拒绝处理，不把存储错误抛给调用方
	require.NoError(t, db.Migrator().DropTable(&model.User{}))

	err := service.CanRead(user.ID, book, chapter)
	assert.ErrorIs(t, err, ErrVipRequired)
}

func TestEntitlementService_PurchaseFlipsEntitlement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	provider := identity.NewGormProvider(db)
	entitlement := NewEntitlementService(provider)
	subscription := NewSubscriptionService(db, repository.NewUserRepository(db),
		repository.NewTransactionRepository(db), provider, nil, nil)

	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1)
	user := testutil.TestUser(t, db, testutil.WithExpiredVip())

	// 过期会员被拒，购买后同一章节立即可读
	assert.ErrorIs(t, entitlement.CanRead(user.ID, book, chapter), ErrVipRequired)

	_, err := subscription.Purchase(context.Background(), user.ID, &dto.PurchaseRequest{
		PackageType: int(model.PackageOneMonth),
	})
	require.NoError(t, err)

	assert.NoError(t, entitlement.CanRead(user.ID, book, chapter))
}

func TestEntitlementService_CanRead_UnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewEntitlementService(identity.NewGormProvider(db))
	book := testutil.TestBook(t, db, testutil.WithPremium())
	chapter := testutil.TestChapter(t, db, book.ID, 1)

	err := service.CanRead(99999, book, chapter)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVipRequired)
}
