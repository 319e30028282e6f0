package dto

// SubmitReviewRequest 提交评分请求
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// SubmitReviewResponse 提交评分响应
type SubmitReviewResponse struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// SubmitCommentRequest 提交留言请求（无评分）
type SubmitCommentRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

// CommentItem 留言项
type CommentItem struct {
	ID        int64  `json:"id"`
	UserName  string `json:"user_name"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ReviewItem 书评项（含评分与留言）
type ReviewItem struct {
	ID        int64  `json:"id"`
	BookID    int64  `json:"book_id"`
	BookTitle string `json:"book_title,omitempty"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	Rating    *int   `json:"rating,omitempty"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// AdminReviewListRequest 后台书评筛选请求
type AdminReviewListRequest struct {
	SearchTerm string `form:"search_term"`
	Rating     *int   `form:"rating"`
	StartDate  string `form:"start_date"` // yyyy-MM-dd
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by,default=newest"` // newest, oldest, rating_high, rating_low
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=30"`
}

// UpdateReviewRequest 后台修改书评请求（作者、书籍、创建时间不可变）
type UpdateReviewRequest struct {
	Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}
