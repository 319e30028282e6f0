package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VipPackageType VIP 套餐类型，数值即套餐月数（999 表示永久）
type VipPackageType int

const (
	PackageOneMonth    VipPackageType = 1
	PackageThreeMonths VipPackageType = 3
	PackageSixMonths   VipPackageType = 6
	PackageOneYear     VipPackageType = 12
	PackageLifetime    VipPackageType = 999
)

// LifetimeMonths 管理员延长时表示永久会员的月数哨兵值
const LifetimeMonths = 999

// 交易状态
const (
	TxStatusCompleted = "completed"
	TxStatusPending   = "pending"
	TxStatusFailed    = "failed"
)

var packagePrices = map[VipPackageType]int64{
	PackageOneMonth:    50000,
	PackageThreeMonths: 130000,
	PackageSixMonths:   250000,
	PackageOneYear:     450000,
	PackageLifetime:    1200000,
}

var packageNames = map[VipPackageType]string{
	PackageOneMonth:    "1 个月",
	PackageThreeMonths: "3 个月",
	PackageSixMonths:   "6 个月",
	PackageOneYear:     "1 年",
	PackageLifetime:    "永久",
}

// Valid 是否为已知套餐
func (p VipPackageType) Valid() bool {
	_, ok := packagePrices[p]
	return ok
}

// Price 套餐固定价格（VND）
func (p VipPackageType) Price() decimal.Decimal {
	return decimal.NewFromInt(packagePrices[p])
}

// Name 套餐显示名
func (p VipPackageType) Name() string {
	if name, ok := packageNames[p]; ok {
		return name
	}
	return "未知套餐"
}

// Months 套餐月数
func (p VipPackageType) Months() int {
	return int(p)
}

// PackageForMonths 按延长月数归入流水套餐档位。
// 非标准月数统一记入永久档，真实月数由调用方写进流水备注。
func PackageForMonths(months int) VipPackageType {
	switch months {
	case 1, 3, 6, 12:
		return VipPackageType(months)
	default:
		return PackageLifetime
	}
}

// PackageTypes 全部套餐，按时长升序
func PackageTypes() []VipPackageType {
	return []VipPackageType{
		PackageOneMonth,
		PackageThreeMonths,
		PackageSixMonths,
		PackageOneYear,
		PackageLifetime,
	}
}

// ExtendExpiry 计算续费后的到期时间。
// 当前仍在有效期内则在原到期时间上叠加，否则从 now 起算；
// 永久套餐统一使用 now+100 年的远期哨兵时间，便于审计。
func ExtendExpiry(current *time.Time, months int, now time.Time) time.Time {
	if months == LifetimeMonths {
		return now.AddDate(100, 0, 0)
	}

	start := now
	if current != nil && current.After(now) {
		start = *current
	}
	return start.AddDate(0, months, 0)
}

type PaymentTransaction struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	PackageType     VipPackageType  `gorm:"not null" json:"package_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	TransactionDate time.Time       `gorm:"not null;index" json:"transaction_date"`
	Status          string          `gorm:"size:50;not null;default:completed;index" json:"status"`
	Notes           string          `gorm:"size:500" json:"notes,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
