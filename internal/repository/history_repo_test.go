package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/testutil"
)

func setupHistoryRepo(t *testing.T) (*HistoryRepository, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return NewHistoryRepository(db), db
}

func TestHistoryRepository_Upsert(t *testing.T) {
	repo, db := setupHistoryRepo(t)

	user := testutil.TestUser(t, db)
	book := testutil.TestBook(t, db)
	ch1 := testutil.TestChapter(t, db, book.ID, 1)
	ch2 := testutil.TestChapter(t, db, book.ID, 2)

	first := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Upsert(user.ID, book.ID, ch1.ID, first))

	// 同一本书再次记录只覆盖，不新增
	second := time.Now()
	require.NoError(t, repo.Upsert(user.ID, book.ID, ch2.ID, second))

	var count int64
	db.Model(&model.ReadingHistory{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	history, err := repo.GetByUserAndBook(user.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, ch2.ID, history.ChapterID)
	assert.WithinDuration(t, second, history.AccessTime, time.Second)
}

func TestHistoryRepository_Upsert_DistinctBooks(t *testing.T) {
	repo, db := setupHistoryRepo(t)

	user := testutil.TestUser(t, db)
	b1 := testutil.TestBook(t, db)
	b2 := testutil.TestBook(t, db)
	c1 := testutil.TestChapter(t, db, b1.ID, 1)
	c2 := testutil.TestChapter(t, db, b2.ID, 1)

	require.NoError(t, repo.Upsert(user.ID, b1.ID, c1.ID, time.Now().Add(-time.Minute)))
	require.NoError(t, repo.Upsert(user.ID, b2.ID, c2.ID, time.Now()))

	histories, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	// 最近访问的在前
	assert.Equal(t, b2.ID, histories[0].BookID)
	require.NotNil(t, histories[0].Book)
	assert.Equal(t, b2.Title, histories[0].Book.Title)
}

func TestHistoryRepository_TopBooks(t *testing.T) {
	repo, db := setupHistoryRepo(t)

	popular := testutil.TestBook(t, db)
	niche := testutil.TestBook(t, db)
	untouched := testutil.TestBook(t, db)
	pc := testutil.TestChapter(t, db, popular.ID, 1)
	nc := testutil.TestChapter(t, db, niche.ID, 1)

	u1 := testutil.TestUser(t, db)
	u2 := testutil.TestUser(t, db)
	testutil.TestHistory(t, db, u1.ID, popular.ID, pc.ID, time.Now())
	testutil.TestHistory(t, db, u2.ID, popular.ID, pc.ID, time.Now())
	testutil.TestHistory(t, db, u1.ID, niche.ID, nc.ID, time.Now())

	rows, err := repo.TopBooks(10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, popular.ID, rows[0].BookID)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.Equal(t, niche.ID, rows[1].BookID)
	// 无人读过的书计数为 0，仍出现在榜单末尾
	assert.Equal(t, untouched.ID, rows[2].BookID)
	assert.Equal(t, int64(0), rows[2].Count)
}
