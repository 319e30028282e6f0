package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/internal/api/middleware"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/pkg/response"
	"github.com/vbook/vbook_go_server/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Submit 提交评分
// POST /api/v1/books/:id/reviews
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.reviewService.SubmitReview(userID, bookID, &req)
	if err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "评分成功", resp)
}

// Comment 提交留言
// POST /api/v1/books/:id/comments
func (h *ReviewHandler) Comment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	var req dto.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.reviewService.SubmitComment(userID, bookID, &req)
	if err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "留言成功", item)
}

// List 某本书的评分列表
// GET /api/v1/books/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	items, err := h.reviewService.BookReviews(bookID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// Comments 某本书最近的留言
// GET /api/v1/books/:id/comments
func (h *ReviewHandler) Comments(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书籍ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, err := h.reviewService.BookComments(bookID, limit)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// AdminList 后台书评列表
// GET /api/v1/admin/reviews
func (h *ReviewHandler) AdminList(c *gin.Context) {
	var req dto.AdminReviewListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	items, total, err := h.reviewService.AdminList(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, req.Page, req.PageSize, items)
}

// AdminUpdate 后台修改书评
// PUT /api/v1/admin/reviews/:id
func (h *ReviewHandler) AdminUpdate(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书评ID")
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.reviewService.AdminUpdate(reviewID, &req); err != nil {
		switch err {
		case service.ErrReviewNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "更新成功", nil)
}

// AdminDelete 后台删除书评
// DELETE /api/v1/admin/reviews/:id
func (h *ReviewHandler) AdminDelete(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的书评ID")
		return
	}

	if err := h.reviewService.AdminDelete(reviewID); err != nil {
		switch err {
		case service.ErrReviewNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}
