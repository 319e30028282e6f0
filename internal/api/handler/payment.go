package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/internal/api/middleware"
	"github.com/vbook/vbook_go_server/internal/model/dto"
	"github.com/vbook/vbook_go_server/internal/pkg/response"
	"github.com/vbook/vbook_go_server/internal/service"
)

type PaymentHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewPaymentHandler(subscriptionService *service.SubscriptionService) *PaymentHandler {
	return &PaymentHandler{
		subscriptionService: subscriptionService,
	}
}

// Packages 套餐列表
// GET /api/v1/vip/packages
func (h *PaymentHandler) Packages(c *gin.Context) {
	response.Success(c, h.subscriptionService.Packages())
}

// Purchase 购买 VIP
// POST /api/v1/vip/purchase
func (h *PaymentHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.subscriptionService.Purchase(c.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrInvalidPackage:
			response.ParamError(c, err.Error())
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "购买成功", resp)
}

// History 我的交易记录
// GET /api/v1/vip/transactions
func (h *PaymentHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.subscriptionService.PaymentHistory(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}

// AdminExtend 管理员延长用户 VIP
// POST /api/v1/admin/users/:id/vip/extend
func (h *PaymentHandler) AdminExtend(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	var req dto.ExtendVipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.subscriptionService.AdminExtend(c.Request.Context(), userID, req.Months)
	if err != nil {
		switch err {
		case service.ErrInvalidMonths:
			response.ParamError(c, err.Error())
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "延长成功", resp)
}

// AdminRemoveVip 管理员移除用户 VIP
// DELETE /api/v1/admin/users/:id/vip
func (h *PaymentHandler) AdminRemoveVip(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	if err := h.subscriptionService.AdminRemoveVip(userID); err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrNotVip:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "已移除 VIP", nil)
}

// AdminUserTransactions 后台查看用户交易记录
// GET /api/v1/admin/users/:id/transactions
func (h *PaymentHandler) AdminUserTransactions(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	items, err := h.subscriptionService.PaymentHistory(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, items)
}
