package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-lite/internal/application/book"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	addBookUseCase    *appbook.AddBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
	lowStockUseCase   *appbook.LowStockUseCase
	outOfStockUseCase *appbook.OutOfStockUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	addBookUseCase *appbook.AddBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	lowStockUseCase *appbook.LowStockUseCase,
	outOfStockUseCase *appbook.OutOfStockUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		addBookUseCase:    addBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
		lowStockUseCase:   lowStockUseCase,
		outOfStockUseCase: outOfStockUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  全部在架图书，缺货图书的availability为"Out of Stock"
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=response.ListData{list=[]appbook.BookView}}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.listBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithList(c, books, len(books))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Failure      200 {object} response.Response "40402 图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	book, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, book)
}

// AddBook 上架图书
// @Summary      上架图书
// @Description  管理员添加图书，册数至少为1
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Failure      200 {object} response.Response "40900 参数错误 / 40104 无权限"
// @Router       /api/v1/admin/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// 2. 调用应用层用例
	book, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		Name:   req.Name,
		Author: req.Author,
		Copies: req.Copies,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, book)
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Description  整体覆盖书名、作者、册数；册数可以为0
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookView}
// @Router       /api/v1/admin/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	book, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:     id,
		Name:   req.Name,
		Author: req.Author,
		Copies: *req.Copies,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, book)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  仍有待处理订单引用时拒绝（40007）
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// LowStock 低库存报表
// @Summary      低库存图书
// @Description  copies小于等于阈值的图书，附带预警数量
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        threshold query int false "阈值，缺省使用配置"
// @Success      200 {object} response.Response{data=appbook.StockReport}
// @Router       /api/v1/admin/stock/low [get]
func (h *BookHandler) LowStock(c *gin.Context) {
	var query dto.LowStockQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	report, err := h.lowStockUseCase.Execute(c.Request.Context(), query.Threshold)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

// OutOfStock 缺货报表
// @Summary      缺货图书
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appbook.StockReport}
// @Router       /api/v1/admin/stock/out [get]
func (h *BookHandler) OutOfStock(c *gin.Context) {
	report, err := h.outOfStockUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}
