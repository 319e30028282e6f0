package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
)

var fixtureSeq int64

func nextSeq() int64 {
	fixtureSeq++
	return fixtureSeq
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := nextSeq()
	user := &model.User{
		Email:            fmt.Sprintf("test_%d_%d@example.com", time.Now().UnixNano(), seq),
		PasswordHash:     "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		FullName:         fmt.Sprintf("Test User %d", seq),
		RegistrationDate: time.Now(),
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithVip 设置为有效 VIP，expiresAt 为 nil 表示永久
func WithVip(expiresAt *time.Time) func(*model.User) {
	return func(u *model.User) {
		u.IsMember = true
		u.SubscriptionExpiresAt = expiresAt
	}
}

// WithExpiredVip 设置为已过期的 VIP
func WithExpiredVip() func(*model.User) {
	return func(u *model.User) {
		expired := time.Now().AddDate(0, 0, -1)
		u.IsMember = true
		u.SubscriptionExpiresAt = &expired
	}
}

// WithRegistrationDate 设置注册时间
func WithRegistrationDate(at time.Time) func(*model.User) {
	return func(u *model.User) {
		u.RegistrationDate = at
	}
}

// GrantRole 给测试用户赋角色
func GrantRole(t *testing.T, db *gorm.DB, userID int64, role string) {
	t.Helper()

	if err := identity.NewGormProvider(db).AddToRole(userID, role); err != nil {
		t.Fatalf("Failed to grant role %s: %v", role, err)
	}
}

// TestBook 创建测试书籍
func TestBook(t *testing.T, db *gorm.DB, opts ...func(*model.Book)) *model.Book {
	t.Helper()

	book := &model.Book{
		Title:       fmt.Sprintf("Test Book %d", nextSeq()),
		Author:      "Test Author",
		AccessLevel: model.AccessFree,
		Genre:       model.GenreFantasy,
		LastUpdated: time.Now(),
	}

	for _, opt := range opts {
		opt(book)
	}

	if err := db.Create(book).Error; err != nil {
		t.Fatalf("Failed to create test book: %v", err)
	}

	return book
}

// WithPremium 设置为 VIP 专属书籍
func WithPremium() func(*model.Book) {
	return func(b *model.Book) {
		b.AccessLevel = model.AccessPremium
	}
}

// WithGenre 设置分类
func WithGenre(genre model.Genre) func(*model.Book) {
	return func(b *model.Book) {
		b.Genre = genre
	}
}

// WithLastUpdated 设置更新时间
func WithLastUpdated(at time.Time) func(*model.Book) {
	return func(b *model.Book) {
		b.LastUpdated = at
	}
}

// TestChapter 创建测试章节
func TestChapter(t *testing.T, db *gorm.DB, bookID int64, order int, opts ...func(*model.Chapter)) *model.Chapter {
	t.Helper()

	chapter := &model.Chapter{
		BookID:       bookID,
		Title:        fmt.Sprintf("Chapter %d", order),
		Content:      "章节正文内容",
		ChapterOrder: order,
	}

	for _, opt := range opts {
		opt(chapter)
	}

	if err := db.Create(chapter).Error; err != nil {
		t.Fatalf("Failed to create test chapter: %v", err)
	}

	return chapter
}

// WithFreeChapter 设置为试读章节
func WithFreeChapter() func(*model.Chapter) {
	return func(c *model.Chapter) {
		c.IsFree = true
	}
}

// TestTransaction 创建测试交易流水
func TestTransaction(t *testing.T, db *gorm.DB, userID int64, pkg model.VipPackageType, at time.Time, opts ...func(*model.PaymentTransaction)) *model.PaymentTransaction {
	t.Helper()

	tx := &model.PaymentTransaction{
		UserID:          userID,
		PackageType:     pkg,
		Amount:          pkg.Price(),
		TransactionDate: at,
		Status:          model.TxStatusCompleted,
	}

	for _, opt := range opts {
		opt(tx)
	}

	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return tx
}

// WithStatus 设置交易状态
func WithStatus(status string) func(*model.PaymentTransaction) {
	return func(tx *model.PaymentTransaction) {
		tx.Status = status
	}
}

// WithAmount 设置交易金额
func WithAmount(amount int64) func(*model.PaymentTransaction) {
	return func(tx *model.PaymentTransaction) {
		tx.Amount = decimal.NewFromInt(amount)
	}
}

// TestReview 创建测试评分
func TestReview(t *testing.T, db *gorm.DB, userID, bookID int64, rating int, comment string) *model.Review {
	t.Helper()

	review := &model.Review{
		UserID:  userID,
		BookID:  bookID,
		Rating:  &rating,
		Comment: comment,
	}

	if err := db.Create(review).Error; err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}

	return review
}

// TestComment 创建测试留言（无评分）
func TestComment(t *testing.T, db *gorm.DB, userID, bookID int64, content string) *model.Review {
	t.Helper()

	review := &model.Review{
		UserID:  userID,
		BookID:  bookID,
		Comment: content,
	}

	if err := db.Create(review).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	return review
}

// TestFavorite 创建测试收藏
func TestFavorite(t *testing.T, db *gorm.DB, userID, bookID int64) *model.Favorite {
	t.Helper()

	favorite := &model.Favorite{
		UserID:    userID,
		BookID:    bookID,
		DateAdded: time.Now(),
	}

	if err := db.Create(favorite).Error; err != nil {
		t.Fatalf("Failed to create test favorite: %v", err)
	}

	return favorite
}

// TestHistory 创建测试阅读记录
func TestHistory(t *testing.T, db *gorm.DB, userID, bookID, chapterID int64, at time.Time) *model.ReadingHistory {
	t.Helper()

	history := &model.ReadingHistory{
		UserID:     userID,
		BookID:     bookID,
		ChapterID:  chapterID,
		AccessTime: at,
	}

	if err := db.Create(history).Error; err != nil {
		t.Fatalf("Failed to create test history: %v", err)
	}

	return history
}
