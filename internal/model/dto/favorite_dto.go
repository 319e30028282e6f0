package dto

// ToggleFavoriteResponse 收藏切换响应
type ToggleFavoriteResponse struct {
	Favorited bool  `json:"favorited"`
	Count     int64 `json:"count"`
}

// FavoriteStatusResponse 收藏状态响应
type FavoriteStatusResponse struct {
	Favorited bool `json:"favorited"`
}

// FavoriteItem 收藏列表项
type FavoriteItem struct {
	ID        int64  `json:"id"`
	BookID    int64  `json:"book_id"`
	BookTitle string `json:"book_title"`
	CoverURL  string `json:"cover_url"`
	DateAdded string `json:"date_added"`
}
