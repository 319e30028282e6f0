package dto

// GrowthStat 月度环比统计（计数类）
type GrowthStat struct {
	ThisMonth     int64   `json:"this_month"`
	LastMonth     int64   `json:"last_month"`
	GrowthPercent float64 `json:"growth_percent"`
}

// RevenueGrowthStat 月度环比统计（金额类，金额以字符串精确表示）
type RevenueGrowthStat struct {
	ThisMonth     string  `json:"this_month"`
	LastMonth     string  `json:"last_month"`
	GrowthPercent float64 `json:"growth_percent"`
}

// MonthlyRevenueItem 按月收入项
type MonthlyRevenueItem struct {
	Month    string `json:"month"` // MM/yyyy
	Revenue  string `json:"revenue"`
	VipCount int64  `json:"vip_count"`
}

// PackageSalesItem 套餐销量分布项
type PackageSalesItem struct {
	PackageType int    `json:"package_type"`
	Name        string `json:"name"`
	Count       int64  `json:"count"`
}

// BookStatItem 书籍榜单项
type BookStatItem struct {
	BookID int64  `json:"book_id"`
	Title  string `json:"title"`
	Count  int64  `json:"count"`
}

// GenreStatItem 分类占比项
type GenreStatItem struct {
	Genre   int     `json:"genre"`
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

// DashboardResponse 管理后台数据总览
type DashboardResponse struct {
	TotalUsers     int64  `json:"total_users"`
	TotalBooks     int64  `json:"total_books"`
	TotalFavorites int64  `json:"total_favorites"`
	TotalReadings  int64  `json:"total_readings"`
	ActiveVipUsers int64  `json:"active_vip_users"`
	TotalRevenue   string `json:"total_revenue"`

	UserGrowth    GrowthStat        `json:"user_growth"`
	VipGrowth     GrowthStat        `json:"vip_growth"`
	RevenueGrowth RevenueGrowthStat `json:"revenue_growth"`

	PackageSales       []PackageSalesItem   `json:"package_sales"`
	MonthlyRevenue     []MonthlyRevenueItem `json:"monthly_revenue"`
	MostFavoritedBooks []BookStatItem       `json:"most_favorited_books"`
	MostReadBooks      []BookStatItem       `json:"most_read_books"`
	FavoriteGenreStats []GenreStatItem      `json:"favorite_genre_stats"`
}

// DailyConversionItem 当月按日转化项
type DailyConversionItem struct {
	Date    string `json:"date"` // yyyy-MM-dd
	Count   int64  `json:"count"`
	Revenue string `json:"revenue"`
}

// HourlyConversionItem 当日按小时转化项
type HourlyConversionItem struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// ConversionStatsResponse VIP 转化统计
type ConversionStatsResponse struct {
	Daily  []DailyConversionItem  `json:"daily"`
	Hourly []HourlyConversionItem `json:"hourly"`
}
