package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVipPackageType_Valid(t *testing.T) {
	for _, p := range PackageTypes() {
		assert.True(t, p.Valid(), "package %d should be valid", p)
	}

	assert.False(t, VipPackageType(0).Valid())
	assert.False(t, VipPackageType(2).Valid())
	assert.False(t, VipPackageType(-1).Valid())
}

func TestVipPackageType_Price(t *testing.T) {
	assert.Equal(t, "50000", PackageOneMonth.Price().String())
	assert.Equal(t, "130000", PackageThreeMonths.Price().String())
	assert.Equal(t, "250000", PackageSixMonths.Price().String())
	assert.Equal(t, "450000", PackageOneYear.Price().String())
	assert.Equal(t, "1200000", PackageLifetime.Price().String())
}

func TestVipPackageType_Name(t *testing.T) {
	assert.Equal(t, "3 个月", PackageThreeMonths.Name())
	assert.Equal(t, "永久", PackageLifetime.Name())
	assert.Equal(t, "未知套餐", VipPackageType(7).Name())
}

func TestPackageForMonths(t *testing.T) {
	assert.Equal(t, PackageOneMonth, PackageForMonths(1))
	assert.Equal(t, PackageThreeMonths, PackageForMonths(3))
	assert.Equal(t, PackageSixMonths, PackageForMonths(6))
	assert.Equal(t, PackageOneYear, PackageForMonths(12))
	assert.Equal(t, PackageLifetime, PackageForMonths(999))

	// 非标准月数统一归入永久档
	assert.Equal(t, PackageLifetime, PackageForMonths(5))
	assert.Equal(t, PackageLifetime, PackageForMonths(24))
}

func TestExtendExpiry(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("no current expiry starts from now", func(t *testing.T) {
		got := ExtendExpiry(nil, 3, now)
		assert.Equal(t, now.AddDate(0, 3, 0), got)
	})

	t.Run("active expiry stacks", func(t *testing.T) {
		current := now.AddDate(0, 1, 0)
		got := ExtendExpiry(&current, 6, now)
		assert.Equal(t, current.AddDate(0, 6, 0), got)
	})

	t.Run("expired anchor resets to now", func(t *testing.T) {
		expired := now.AddDate(0, -2, 0)
		got := ExtendExpiry(&expired, 12, now)
		assert.Equal(t, now.AddDate(0, 12, 0), got)
	})

	t.Run("lifetime uses far future sentinel", func(t *testing.T) {
		current := now.AddDate(0, 1, 0)
		got := ExtendExpiry(&current, LifetimeMonths, now)
		assert.Equal(t, now.AddDate(100, 0, 0), got)
	})
}

func TestUser_VipActive(t *testing.T) {
	now := time.Now()

	t.Run("not member", func(t *testing.T) {
		u := &User{IsMember: false}
		assert.False(t, u.VipActive(now))
	})

	t.Run("member without expiry is lifetime", func(t *testing.T) {
		u := &User{IsMember: true}
		assert.True(t, u.VipActive(now))
	})

	t.Run("member with future expiry", func(t *testing.T) {
		future := now.Add(time.Hour)
		u := &User{IsMember: true, SubscriptionExpiresAt: &future}
		assert.True(t, u.VipActive(now))
	})

	t.Run("member with past expiry", func(t *testing.T) {
		past := now.Add(-time.Hour)
		u := &User{IsMember: true, SubscriptionExpiresAt: &past}
		assert.False(t, u.VipActive(now))
	})
}
