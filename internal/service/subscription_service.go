package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/pkg/email"
	"github.com/vbook/vbook_go_server/internal/pkg/pubsub"
	"github.com/vbook/vbook_go_server/internal/repository"
)

var (
	ErrInvalidPackage = errors.New("无效的套餐类型")
	ErrInvalidMonths  = errors.New("无效的延长月数")
	ErrNotVip         = errors.New("该用户不是 VIP 会员")
)

// SubscriptionService VIP 订阅。购买走单事务：流水与用户状态同进同退；
// 角色同步、回执邮件、转化推送都在事务外尽力而为，失败不回滚支付。
type SubscriptionService struct {
	db        *gorm.DB
	userRepo  *repository.UserRepository
	txRepo    *repository.TransactionRepository
	identity  identity.Provider
	emailSvc  *email.Service
	publisher *pubsub.Publisher
}

func NewSubscriptionService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	txRepo *repository.TransactionRepository,
	provider identity.Provider,
	emailSvc *email.Service,
	publisher *pubsub.Publisher,
) *SubscriptionService {
	return &SubscriptionService{
		db:        db,
		userRepo:  userRepo,
		txRepo:    txRepo,
		identity:  provider,
		emailSvc:  emailSvc,
		publisher: publisher,
	}
}

// Packages 全部可购套餐，按时长升序
func (s *SubscriptionService) Packages() []*dto.PackageItem {
	types := model.PackageTypes()
	items := make([]*dto.PackageItem, 0, len(types))
	for _, t := range types {
		items = append(items, &dto.PackageItem{
			Type:   int(t),
			Name:   t.Name(),
			Months: t.Months(),
			Price:  t.Price().String(),
		})
	}
	return items
}

// Purchase 购买 VIP 套餐。到期时间在现有有效期上叠加，
// 已过期则从当前时间起算。
func (s *SubscriptionService) Purchase(ctx context.Context, userID int64, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	pkg := model.VipPackageType(req.PackageType)
	if !pkg.Valid() {
		return nil, ErrInvalidPackage
	}

	now := time.Now()
	payment := &model.PaymentTransaction{
		UserID:          userID,
		PackageType:     pkg,
		Amount:          pkg.Price(),
		TransactionDate: now,
		Status:          model.TxStatusCompleted,
	}

	var user model.User
	var newExpiry time.Time

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 到期时间必须以事务内读到的为准
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		newExpiry = model.ExtendExpiry(user.SubscriptionExpiresAt, pkg.Months(), now)

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"is_member":               true,
			"subscription_expires_at": newExpiry,
		}
		// 付款时顺带补全的联系信息
		if req.FullName != "" {
			updates["full_name"] = req.FullName
		}
		if req.PhoneNumber != "" {
			updates["phone_number"] = req.PhoneNumber
		}
		return tx.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.PurchaseResponse{
		TransactionID: payment.ID,
		PackageName:   pkg.Name(),
		Amount:        payment.Amount.String(),
		ExpiresAt:     newExpiry.Format(time.RFC3339),
	}

	// 支付已落库，角色同步失败只记警告
	if err := s.identity.AddToRole(userID, model.RoleMember); err != nil {
		log.Printf("failed to sync member role for user %d: %v", userID, err)
		resp.Warning = "会员角色同步失败，请联系管理员"
	}

	s.notifyConversion(ctx, pubsub.EventPurchase, payment)
	s.sendReceipt(user.Email, pkg, payment.Amount.String(), resp.ExpiresAt)

	return resp, nil
}

// AdminExtend 管理员手动延长 VIP。months 为 999 时设为永久。
// 补一条 0 金额流水便于审计，不影响任何营收统计。
func (s *SubscriptionService) AdminExtend(ctx context.Context, userID int64, months int) (*dto.ExtendVipResponse, error) {
	if months <= 0 || (months > 120 && months != model.LifetimeMonths) {
		return nil, ErrInvalidMonths
	}

	note := "管理员手动延长（永久）"
	if months != model.LifetimeMonths {
		note = fmt.Sprintf("管理员手动延长 %d 个月", months)
	}

	now := time.Now()
	payment := &model.PaymentTransaction{
		UserID:          userID,
		PackageType:     model.PackageForMonths(months),
		Amount:          decimal.Zero,
		TransactionDate: now,
		Status:          model.TxStatusCompleted,
		Notes:           note,
	}

	var newExpiry time.Time

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		newExpiry = model.ExtendExpiry(user.SubscriptionExpiresAt, months, now)

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"is_member":               true,
			"subscription_expires_at": newExpiry,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ExtendVipResponse{
		ExpiresAt: newExpiry.Format(time.RFC3339),
	}

	if err := s.identity.AddToRole(userID, model.RoleMember); err != nil {
		log.Printf("failed to sync member role for user %d: %v", userID, err)
		resp.Warning = "会员角色同步失败，请联系管理员"
	}

	s.notifyConversion(ctx, pubsub.EventAdminExtend, payment)

	return resp, nil
}

// AdminRemoveVip 管理员移除 VIP。只清状态与角色，历史流水不动。
func (s *SubscriptionService) AdminRemoveVip(userID int64) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !user.IsMember {
		return ErrNotVip
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"is_member":               false,
		"subscription_expires_at": nil,
	}); err != nil {
		return err
	}

	if err := s.identity.RemoveFromRole(userID, model.RoleMember); err != nil {
		log.Printf("failed to revoke member role for user %d: %v", userID, err)
	}

	return nil
}

// PaymentHistory 用户的交易记录，按时间倒序
func (s *SubscriptionService) PaymentHistory(userID int64) ([]*dto.TransactionItem, error) {
	txs, err := s.txRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TransactionItem, 0, len(txs))
	for _, t := range txs {
		items = append(items, &dto.TransactionItem{
			ID:              t.ID,
			PackageType:     int(t.PackageType),
			PackageName:     t.PackageType.Name(),
			Amount:          t.Amount.String(),
			TransactionDate: t.TransactionDate.Format(time.RFC3339),
			Status:          t.Status,
			Notes:           t.Notes,
		})
	}
	return items, nil
}

func (s *SubscriptionService) notifyConversion(ctx context.Context, event string, payment *model.PaymentTransaction) {
	if s.publisher == nil {
		return
	}

	msg := &pubsub.ConversionMessage{
		Event:         event,
		UserID:        payment.UserID,
		TransactionID: payment.ID,
		PackageType:   int(payment.PackageType),
		PackageName:   payment.PackageType.Name(),
		Amount:        payment.Amount.String(),
		OccurredAt:    payment.TransactionDate.Format(time.RFC3339),
	}
	if err := s.publisher.PublishConversion(ctx, msg); err != nil {
		log.Printf("failed to publish conversion event: %v", err)
	}
}

func (s *SubscriptionService) sendReceipt(to string, pkg model.VipPackageType, amount, expiresAt string) {
	if s.emailSvc == nil || to == "" {
		return
	}

	go func() {
		if err := s.emailSvc.SendPaymentReceipt(to, pkg.Name(), amount, expiresAt); err != nil {
			log.Printf("failed to send payment receipt to %s: %v", to, err)
		}
	}()
}
