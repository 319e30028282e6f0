package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/repository"
	"github.com/vbook/vbook_go_server/internal/testutil"
)

func setupSubscriptionService(t *testing.T) (*SubscriptionService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	provider := identity.NewGormProvider(db)

	// 邮件与推送在测试里关闭，服务内部按 nil 跳过
	return NewSubscriptionService(db, userRepo, txRepo, provider, nil, nil), db
}

func TestSubscriptionService_Purchase_FirstTime(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	before := time.Now()
	resp, err := service.Purchase(context.Background(), user.ID, &dto.PurchaseRequest{
		PackageType: int(model.PackageThreeMonths),
	})
	require.NoError(t, err)

	assert.Equal(t, "3 个月", resp.PackageName)
	assert.Equal(t, "130000", resp.Amount)
	assert.Empty(t, resp.Warning)

	// 从当前时间起算 3 个月
	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.True(t, updated.IsMember)
	require.NotNil(t, updated.SubscriptionExpiresAt)
	expected := before.AddDate(0, 3, 0)
	assert.WithinDuration(t, expected, *updated.SubscriptionExpiresAt, 5*time.Second)

	// 流水落库
	var txs []model.PaymentTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.Equal(t, model.TxStatusCompleted, txs[0].Status)
	assert.Equal(t, "130000", txs[0].Amount.String())

	// 会员角色同步
	in, err := identity.NewGormProvider(db).IsInRole(user.ID, model.RoleMember)
	require.NoError(t, err)
	assert.True(t, in)
}

func TestSubscriptionService_Purchase_StacksOnActiveExpiry(t *testing.T) {
	service, db := setupSubscriptionService(t)

	expiry := time.Now().AddDate(0, 2, 0)
	user := testutil.TestUser(t, db, testutil.WithVip(&expiry))

	_, err := service.Purchase(context.Background(), user.ID, &dto.PurchaseRequest{
		PackageType: int(model.PackageOneMonth),
	})
	require.NoError(t, err)

	// 在原到期时间上叠加，不是从现在起算
	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.NotNil(t, updated.SubscriptionExpiresAt)
	expected := expiry.AddDate(0, 1, 0)
	assert.WithinDuration(t, expected, *updated.SubscriptionExpiresAt, 5*time.Second)
}

func TestSubscriptionService_Purchase_ExpiredAnchorsOnNow(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db, testutil.WithExpiredVip())

	before := time.Now()
	_, err := service.Purchase(context.Background(), user.ID, &dto.PurchaseRequest{
		PackageType: int(model.PackageOneMonth),
	})
	require.NoError(t, err)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.NotNil(t, updated.SubscriptionExpiresAt)
	expected := before.AddDate(0, 1, 0)
	assert.WithinDuration(t, expected, *updated.SubscriptionExpiresAt, 5*time.Second)
}

func TestSubscriptionService_Purchase_Lifetime(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	before := time.Now()
	resp, err := service.Purchase(context.Background(), user.ID, &dto.PurchaseRequest{
		PackageType: int(model.PackageLifetime),
	})
	require.NoError(t, err)
	assert.Equal(t, "1200000", resp.Amount)

	// 永久套餐使用 now+100 年的远期哨兵时间
	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.NotNil(t, updated.SubscriptionExpiresAt)
	expected := before.AddDate(100, 0, 0)
	assert.WithinDuration(t, expected, *updated.SubscriptionExpiresAt, 5*time.Second)
	assert.True(t, updated.VipActive(time.Now()))
}

func TestSubscriptionService_Purchase_InvalidPackage(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	_, err := service.Purchase(context.Background(), user.ID, &dto.PurchaseRequest{
		PackageType: 7,
	})
	assert.ErrorIs(t, err, ErrInvalidPackage)

	// 无效套餐不产生流水
	var count int64
	db.Model(&model.PaymentTransaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubscriptionService_Purchase_UserNotFound(t *testing.T) {
	service, _ := setupSubscriptionService(t)

	_, err := service.Purchase(context.Background(), 99999, &dto.PurchaseRequest{
		PackageType: int(model.PackageOneMonth),
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubscriptionService_Purchase_UpdatesContactInfo(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	_, err := service.Purchase(context.Background(), user.ID, &dto.PurchaseRequest{
		PackageType: int(model.PackageOneMonth),
		FullName:    "Nguyen Van A",
		PhoneNumber: "0901234567",
	})
	require.NoError(t, err)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "Nguyen Van A", updated.FullName)
	assert.Equal(t, "0901234567", updated.PhoneNumber)
}

func TestSubscriptionService_AdminExtend(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	before := time.Now()
	resp, err := service.AdminExtend(context.Background(), user.ID, 6)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ExpiresAt)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.True(t, updated.IsMember)
	require.NotNil(t, updated.SubscriptionExpiresAt)
	assert.WithinDuration(t, before.AddDate(0, 6, 0), *updated.SubscriptionExpiresAt, 5*time.Second)

	// 补 0 金额流水便于审计
	var txs []model.PaymentTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.IsZero())
	assert.Equal(t, model.PackageSixMonths, txs[0].PackageType)
	assert.Equal(t, "管理员手动延长 6 个月", txs[0].Notes)
	assert.Equal(t, model.TxStatusCompleted, txs[0].Status)
}

func TestSubscriptionService_AdminExtend_NonStandardMonths(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	before := time.Now()
	_, err := service.AdminExtend(context.Background(), user.ID, 5)
	require.NoError(t, err)

	// 到期时间按真实月数算
	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.NotNil(t, updated.SubscriptionExpiresAt)
	assert.WithinDuration(t, before.AddDate(0, 5, 0), *updated.SubscriptionExpiresAt, 5*time.Second)

	// 非标准月数归入永久档，不产生无名套餐；真实月数记在备注里
	var txs []model.PaymentTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.Equal(t, model.PackageLifetime, txs[0].PackageType)
	assert.Equal(t, "永久", txs[0].PackageType.Name())
	assert.Equal(t, "管理员手动延长 5 个月", txs[0].Notes)
}

func TestSubscriptionService_AdminExtend_Lifetime(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	before := time.Now()
	_, err := service.AdminExtend(context.Background(), user.ID, model.LifetimeMonths)
	require.NoError(t, err)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.NotNil(t, updated.SubscriptionExpiresAt)
	assert.WithinDuration(t, before.AddDate(100, 0, 0), *updated.SubscriptionExpiresAt, 5*time.Second)
}

func TestSubscriptionService_AdminExtend_InvalidMonths(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	_, err := service.AdminExtend(context.Background(), user.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidMonths)

	_, err = service.AdminExtend(context.Background(), user.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidMonths)
}

func TestSubscriptionService_AdminRemoveVip(t *testing.T) {
	service, db := setupSubscriptionService(t)

	expiry := time.Now().AddDate(0, 3, 0)
	user := testutil.TestUser(t, db, testutil.WithVip(&expiry))
	testutil.GrantRole(t, db, user.ID, model.RoleMember)
	testutil.TestTransaction(t, db, user.ID, model.PackageThreeMonths, time.Now())

	require.NoError(t, service.AdminRemoveVip(user.ID))

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.False(t, updated.IsMember)
	assert.Nil(t, updated.SubscriptionExpiresAt)

	// member 角色一并撤销
	in, err := identity.NewGormProvider(db).IsInRole(user.ID, model.RoleMember)
	require.NoError(t, err)
	assert.False(t, in)

	// 历史流水保持不动
	var count int64
	db.Model(&model.PaymentTransaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubscriptionService_AdminRemoveVip_NotVip(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	err := service.AdminRemoveVip(user.ID)
	assert.ErrorIs(t, err, ErrNotVip)
}

func TestSubscriptionService_PaymentHistory_NewestFirst(t *testing.T) {
	service, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	now := time.Now()
	testutil.TestTransaction(t, db, user.ID, model.PackageOneMonth, now.AddDate(0, -2, 0))
	testutil.TestTransaction(t, db, user.ID, model.PackageThreeMonths, now)
	testutil.TestTransaction(t, db, user.ID, model.PackageOneMonth, now.AddDate(0, -1, 0))

	items, err := service.PaymentHistory(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "3 个月", items[0].PackageName)
	assert.Equal(t, "50000", items[1].Amount)
}

func TestSubscriptionService_Packages(t *testing.T) {
	service, _ := setupSubscriptionService(t)

	items := service.Packages()
	require.Len(t, items, 5)
	assert.Equal(t, 1, items[0].Type)
	assert.Equal(t, "50000", items[0].Price)
	assert.Equal(t, 999, items[4].Type)
	assert.Equal(t, "1200000", items[4].Price)
}
