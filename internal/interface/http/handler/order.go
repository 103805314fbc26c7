package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookstore-lite/internal/application/order"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// OrderHandler 购物车与订单HTTP处理器
type OrderHandler struct {
	cartUseCase       *apporder.CartUseCase
	submitCartUseCase *apporder.SubmitCartUseCase
	userOrdersUseCase *apporder.UserOrdersUseCase
	allOrdersUseCase  *apporder.AllOrdersUseCase
	checkoutUseCase   *apporder.CheckoutUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	cartUseCase *apporder.CartUseCase,
	submitCartUseCase *apporder.SubmitCartUseCase,
	userOrdersUseCase *apporder.UserOrdersUseCase,
	allOrdersUseCase *apporder.AllOrdersUseCase,
	checkoutUseCase *apporder.CheckoutUseCase,
) *OrderHandler {
	return &OrderHandler{
		cartUseCase:       cartUseCase,
		submitCartUseCase: submitCartUseCase,
		userOrdersUseCase: userOrdersUseCase,
		allOrdersUseCase:  allOrdersUseCase,
		checkoutUseCase:   checkoutUseCase,
	}
}

// ViewCart 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=apporder.CartView}
// @Router       /api/v1/cart [get]
func (h *OrderHandler) ViewCart(c *gin.Context) {
	view, err := h.cartUseCase.View(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
// @Summary      加入购物车
// @Description  只能加入有货的图书，重复加入累加数量，累计数量不能超过在架册数
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "图书与数量"
// @Success      200 {object} response.Response{data=apporder.CartView}
// @Router       /api/v1/cart/items [post]
func (h *OrderHandler) AddCartItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.cartUseCase.AddItem(c.Request.Context(), middleware.GetSession(c), req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 移出购物车
// @Summary      移出购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        book_id path int true "图书ID"
// @Success      200 {object} response.Response{data=apporder.CartView}
// @Router       /api/v1/cart/items/{book_id} [delete]
func (h *OrderHandler) RemoveCartItem(c *gin.Context) {
	bookID, ok := idParam(c, "book_id")
	if !ok {
		return
	}

	view, err := h.cartUseCase.RemoveItem(c.Request.Context(), middleware.GetSession(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/cart [delete]
func (h *OrderHandler) ClearCart(c *gin.Context) {
	if err := h.cartUseCase.Clear(c.Request.Context(), middleware.GetSession(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SubmitOrder 提交购物车
// @Summary      提交订单
// @Description  购物车每一行生成一个Pending订单，任一行库存不足则全部不提交（40001）
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=apporder.SubmitCartResponse}
// @Router       /api/v1/orders [post]
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	resp, err := h.submitCartUseCase.SubmitSession(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// MyOrders 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=response.ListData{list=[]order.View}}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.userOrdersUseCase.Execute(c.Request.Context(), middleware.GetSession(c).Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithList(c, orders, len(orders))
}

// ListOrders 全部订单
// @Summary      全部订单
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Pending 或 Completed"
// @Success      200 {object} response.Response{data=response.ListData{list=[]order.View}}
// @Router       /api/v1/admin/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var query dto.OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	orders, err := h.allOrdersUseCase.Execute(c.Request.Context(), query.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithList(c, orders, len(orders))
}

// Checkout 结账
// @Summary      结账
// @Description  扣减库存并将订单置为Completed；low_stock为true表示剩余册数已到预警线
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.CheckoutResponse}
// @Failure      200 {object} response.Response "40002 订单已处理 / 40006 库存不足"
// @Router       /api/v1/admin/orders/{id}/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.checkoutUseCase.Execute(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}
