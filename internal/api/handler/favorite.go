package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/internal/api/middleware"
	"github.com/vbook/vbook_go_server/internal/pkg/response"
	"github.com/vbook/vbook_go_server/internal/service"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// Toggle 切换收藏
// POST /api/v1/books/:id/favorite
func (h *FavoriteHandler) Toggle(c *gin.Context) {
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

	resp, err := h.favoriteService.Toggle(userID, bookID)
	if err != nil {
		switch err {
		case service.ErrBookNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, resp)
}

// Status 收藏状态
// GET /api/v1/books/:id/favorite
func (h *FavoriteHandler) Status(c *gin.Context) {
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

	resp, err := h.favoriteService.Status(userID, bookID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, resp)
}

// List 收藏列表
// GET /api/v1/user/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := h.favoriteService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, items)
}

// AdminList 后台收藏列表
// GET /api/v1/admin/favorites
func (h *FavoriteHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "30"))

	var userID, bookID *int64
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			userID = &id
		}
	}
	if v := c.Query("book_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			bookID = &id
		}
	}

	items, total, err := h.favoriteService.AdminList(userID, bookID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, items)
}
