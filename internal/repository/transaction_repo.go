package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
)

// TransactionRepository 交易流水仓库。流水只增不改，
// 所有修改入口都不存在，聚合统计只认 completed 状态。
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *model.PaymentTransaction) error {
	return r.db.Create(tx).Error
}

func (r *TransactionRepository) GetByID(id int64) (*model.PaymentTransaction, error) {
	var tx model.PaymentTransaction
	err := r.db.Where("id = ?", id).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListByUser 用户的交易记录，按时间倒序
func (r *TransactionRepository) ListByUser(userID int64) ([]*model.PaymentTransaction, error) {
	var txs []*model.PaymentTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("transaction_date DESC").
		Find(&txs).Error
	return txs, err
}

// ListCompleted 全部已完成交易，按时间升序
func (r *TransactionRepository) ListCompleted() ([]*model.PaymentTransaction, error) {
	var txs []*model.PaymentTransaction
	err := r.db.Where("status = ?", model.TxStatusCompleted).
		Order("transaction_date ASC").
		Find(&txs).Error
	return txs, err
}

// ListCompletedBetween 时间区间 [from, to) 内的已完成交易
func (r *TransactionRepository) ListCompletedBetween(from, to time.Time) ([]*model.PaymentTransaction, error) {
	var txs []*model.PaymentTransaction
	err := r.db.Where("status = ? AND transaction_date >= ? AND transaction_date < ?",
		model.TxStatusCompleted, from, to).
		Order("transaction_date ASC").
		Find(&txs).Error
	return txs, err
}

// CountCompletedBetween 时间区间 [from, to) 内的已完成交易数
func (r *TransactionRepository) CountCompletedBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.PaymentTransaction{}).
		Where("status = ? AND transaction_date >= ? AND transaction_date < ?",
			model.TxStatusCompleted, from, to).
		Count(&count).Error
	return count, err
}

// PackageCount 按套餐的销量行
type PackageCount struct {
	PackageType model.VipPackageType `gorm:"column:package_type"`
	Count       int64                `gorm:"column:count"`
}

// PackageDistribution 已完成交易按套餐分布，销量倒序
func (r *TransactionRepository) PackageDistribution() ([]*PackageCount, error) {
	var rows []*PackageCount
	err := r.db.Model(&model.PaymentTransaction{}).
		Select("package_type, COUNT(*) AS count").
		Where("status = ?", model.TxStatusCompleted).
		Group("package_type").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

func (r *TransactionRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.PaymentTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
