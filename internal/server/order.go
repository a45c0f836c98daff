package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	orderdomain "github.com/haixin886/recharge-hub-system-sub001/internal/order/domain"
)

type createOrderRequest struct {
	UserID        string `json:"user_id"`
	ProductID     string `json:"product_id"`
	Phone         string `json:"phone"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
}

type updateOrderStatusRequest struct {
	Status      string  `json:"status"`
	PaidAmount  *int64  `json:"paid_amount,omitempty"`
	ProcessorID *string `json:"processor_id,omitempty"`
}

// @Summary      Create Order
// @Description  Create a new recharge order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body createOrderRequest true "Create Order Request"
// @Success      200  {object}  orderdomain.Order
// @Router       /orders [post]
func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), orderdomain.CreateRequest{
		UserID:        strings.TrimSpace(req.UserID),
		ProductID:     strings.TrimSpace(req.ProductID),
		Phone:         strings.TrimSpace(req.Phone),
		Amount:        req.Amount,
		PaymentMethod: orderdomain.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Orders
// @Description  List orders with optional filters
// @Tags         orders
// @Produce      json
// @Security     ApiKeyAuth
// @Param        user_id  query  string  false  "User ID"
// @Param        status   query  string  false  "Order status"
// @Param        phone    query  string  false  "Phone prefix"
// @Success      200  {object}  orderdomain.ListResponse
// @Router       /orders [get]
func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		UserID  string `form:"user_id"`
		Status  string `form:"status"`
		Phone   string `form:"phone"`
		Limit   int    `form:"limit"`
		Offset  int    `form:"offset"`
		OrderBy string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListRequest{
		UserID:  strings.TrimSpace(query.UserID),
		Status:  orderdomain.OrderStatus(strings.TrimSpace(query.Status)),
		Phone:   strings.TrimSpace(query.Phone),
		Limit:   query.Limit,
		Offset:  query.Offset,
		OrderBy: strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Order
// @Description  Get order by ID
// @Tags         orders
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  orderdomain.Order
// @Router       /orders/{id} [get]
func (s *Server) GetOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Order Status
// @Description  Advance an order along its lifecycle
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string                    true  "Order ID"
// @Param        request  body  updateOrderStatusRequest  true  "Update Status Request"
// @Success      200  {object}  orderdomain.Order
// @Router       /orders/{id}/status [patch]
func (s *Server) UpdateOrderStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.UpdateStatus(c.Request.Context(), id, orderdomain.UpdateStatusRequest{
		Status:      orderdomain.OrderStatus(strings.TrimSpace(req.Status)),
		PaidAmount:  req.PaidAmount,
		ProcessorID: req.ProcessorID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Order
// @Description  Remove an order from the ledger
// @Tags         orders
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  map[string]string
// @Router       /orders/{id} [delete]
func (s *Server) DeleteOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.orderSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func pathID(c *gin.Context) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return 0, newValidationError("id", "invalid_id", "invalid identifier")
	}
	return id, nil
}
