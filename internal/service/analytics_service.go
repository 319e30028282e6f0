package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/repository"
)

const topBooksLimit = 10

// AnalyticsService 管理后台统计，只读聚合。
// 金额一律用 decimal 精确累加，百分比仅作展示用 float64。
type AnalyticsService struct {
	userRepo     *repository.UserRepository
	bookRepo     *repository.BookRepository
	txRepo       *repository.TransactionRepository
	favoriteRepo *repository.FavoriteRepository
	historyRepo  *repository.HistoryRepository
}

func NewAnalyticsService(
	userRepo *repository.UserRepository,
	bookRepo *repository.BookRepository,
	txRepo *repository.TransactionRepository,
	favoriteRepo *repository.FavoriteRepository,
	historyRepo *repository.HistoryRepository,
) *AnalyticsService {
	return &AnalyticsService{
		userRepo:     userRepo,
		bookRepo:     bookRepo,
		txRepo:       txRepo,
		favoriteRepo: favoriteRepo,
		historyRepo:  historyRepo,
	}
}

// growthPercent 环比增长率：上月为 0 时，本月有量记 100%，否则 0
func growthPercent(this, last float64) float64 {
	if last > 0 {
		return round1((this - last) / last * 100)
	}
	if this > 0 {
		return 100
	}
	return 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// monthStart 所在月份的起点
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Dashboard 数据总览
func (s *AnalyticsService) Dashboard() (*dto.DashboardResponse, error) {
	now := time.Now()
	thisMonthStart := monthStart(now)
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)
	nextMonthStart := thisMonthStart.AddDate(0, 1, 0)

	resp := &dto.DashboardResponse{}

	var err error
	if resp.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if resp.TotalBooks, err = s.bookRepo.Count(); err != nil {
		return nil, err
	}
	if resp.TotalFavorites, err = s.favoriteRepo.Count(); err != nil {
		return nil, err
	}
	if resp.TotalReadings, err = s.historyRepo.Count(); err != nil {
		return nil, err
	}
	if resp.ActiveVipUsers, err = s.userRepo.CountActiveVip(now); err != nil {
		return nil, err
	}

	// 总营收与月度收入：加载全部已完成流水在内存中精确累加
	completed, err := s.txRepo.ListCompleted()
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, tx := range completed {
		total = total.Add(tx.Amount)
	}
	resp.TotalRevenue = total.String()

	// 用户增长
	usersThis, err := s.userRepo.CountRegisteredBetween(thisMonthStart, nextMonthStart)
	if err != nil {
		return nil, err
	}
	usersLast, err := s.userRepo.CountRegisteredBetween(lastMonthStart, thisMonthStart)
	if err != nil {
		return nil, err
	}
	resp.UserGrowth = dto.GrowthStat{
		ThisMonth:     usersThis,
		LastMonth:     usersLast,
		GrowthPercent: growthPercent(float64(usersThis), float64(usersLast)),
	}

	// VIP 转化增长
	vipThis, err := s.txRepo.CountCompletedBetween(thisMonthStart, nextMonthStart)
	if err != nil {
		return nil, err
	}
	vipLast, err := s.txRepo.CountCompletedBetween(lastMonthStart, thisMonthStart)
	if err != nil {
		return nil, err
	}
	resp.VipGrowth = dto.GrowthStat{
		ThisMonth:     vipThis,
		LastMonth:     vipLast,
		GrowthPercent: growthPercent(float64(vipThis), float64(vipLast)),
	}

	// 营收增长
	revenueThis := sumBetween(completed, thisMonthStart, nextMonthStart)
	revenueLast := sumBetween(completed, lastMonthStart, thisMonthStart)
	thisF, _ := revenueThis.Float64()
	lastF, _ := revenueLast.Float64()
	resp.RevenueGrowth = dto.RevenueGrowthStat{
		ThisMonth:     revenueThis.String(),
		LastMonth:     revenueLast.String(),
		GrowthPercent: growthPercent(thisF, lastF),
	}

	// 套餐销量分布
	distribution, err := s.txRepo.PackageDistribution()
	if err != nil {
		return nil, err
	}
	resp.PackageSales = make([]dto.PackageSalesItem, 0, len(distribution))
	for _, row := range distribution {
		resp.PackageSales = append(resp.PackageSales, dto.PackageSalesItem{
			PackageType: int(row.PackageType),
			Name:        row.PackageType.Name(),
			Count:       row.Count,
		})
	}

	resp.MonthlyRevenue = monthlyRevenue(completed, now, 6)

	// 收藏榜 / 阅读榜
	favoriteTop, err := s.favoriteRepo.TopBooks(topBooksLimit)
	if err != nil {
		return nil, err
	}
	resp.MostFavoritedBooks = toBookStats(favoriteTop)

	readTop, err := s.historyRepo.TopBooks(topBooksLimit)
	if err != nil {
		return nil, err
	}
	resp.MostReadBooks = toBookStats(readTop)

	// 收藏分类占比
	genreCounts, err := s.favoriteRepo.GenreCounts()
	if err != nil {
		return nil, err
	}
	resp.FavoriteGenreStats = genreStats(genreCounts)

	return resp, nil
}

// ConversionStats 当月按日、今日按小时的转化统计，空桶补零
func (s *AnalyticsService) ConversionStats() (*dto.ConversionStatsResponse, error) {
	now := time.Now()
	thisMonthStart := monthStart(now)

	txs, err := s.txRepo.ListCompletedBetween(thisMonthStart, now.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	// 当月已过去的每一天一个桶
	days := now.Day()
	daily := make([]dto.DailyConversionItem, days)
	revenues := make([]decimal.Decimal, days)
	for i := 0; i < days; i++ {
		daily[i] = dto.DailyConversionItem{
			Date: thisMonthStart.AddDate(0, 0, i).Format("2006-01-02"),
		}
		revenues[i] = decimal.Zero
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hourly := make([]dto.HourlyConversionItem, 24)
	for h := 0; h < 24; h++ {
		hourly[h] = dto.HourlyConversionItem{Hour: h}
	}

	for _, tx := range txs {
		day := tx.TransactionDate.Day() - 1
		if day >= 0 && day < days {
			daily[day].Count++
			revenues[day] = revenues[day].Add(tx.Amount)
		}

		if !tx.TransactionDate.Before(todayStart) {
			hourly[tx.TransactionDate.Hour()].Count++
		}
	}

	for i := range daily {
		daily[i].Revenue = revenues[i].String()
	}

	return &dto.ConversionStatsResponse{
		Daily:  daily,
		Hourly: hourly,
	}, nil
}

func sumBetween(txs []*model.PaymentTransaction, from, to time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if !tx.TransactionDate.Before(from) && tx.TransactionDate.Before(to) {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// monthlyRevenue 最近 months 个自然月的收入与转化数，无交易的月份补零
func monthlyRevenue(txs []*model.PaymentTransaction, now time.Time, months int) []dto.MonthlyRevenueItem {
	items := make([]dto.MonthlyRevenueItem, 0, months)
	start := monthStart(now).AddDate(0, -(months - 1), 0)

	for i := 0; i < months; i++ {
		from := start.AddDate(0, i, 0)
		to := from.AddDate(0, 1, 0)

		revenue := decimal.Zero
		var count int64
		for _, tx := range txs {
			if !tx.TransactionDate.Before(from) && tx.TransactionDate.Before(to) {
				revenue = revenue.Add(tx.Amount)
				count++
			}
		}

		items = append(items, dto.MonthlyRevenueItem{
			Month:    from.Format("01/2006"),
			Revenue:  revenue.String(),
			VipCount: count,
		})
	}
	return items
}

func toBookStats(rows []*repository.BookCount) []dto.BookStatItem {
	items := make([]dto.BookStatItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.BookStatItem{
			BookID: row.BookID,
			Title:  row.Title,
			Count:  row.Count,
		})
	}
	return items
}

// genreStats 收藏按分类的百分比占比，没有任何收藏时返回空
func genreStats(rows []*repository.GenreCount) []dto.GenreStatItem {
	var total int64
	for _, row := range rows {
		total += row.Count
	}
	if total == 0 {
		return []dto.GenreStatItem{}
	}

	items := make([]dto.GenreStatItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.GenreStatItem{
			Genre:   int(row.Genre),
			Name:    row.Genre.Name(),
			Count:   row.Count,
			Percent: round1(float64(row.Count) / float64(total) * 100),
		})
	}
	return items
}
