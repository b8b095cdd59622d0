package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
	"github.com/ordesk/backoffice/internal/server/http/dto"
)

// OperatorHandler serves the call-center operator surface: queue browsing,
// claiming and the status transitions on the held order.
type OperatorHandler struct {
	assignment AssignmentFacade
	lifecycle  LifecycleFacade
	orders     OrderFacade
}

// NewOperatorHandler constructs OperatorHandler.
func NewOperatorHandler(assignment AssignmentFacade, lifecycle LifecycleFacade, orders OrderFacade) *OperatorHandler {
	return &OperatorHandler{assignment: assignment, lifecycle: lifecycle, orders: orders}
}

func queueFilter(c *gin.Context) (repository.QueueFilter, error) {
	var filter repository.QueueFilter
	if v := c.Query("type"); v != "" {
		orderType := model.OrderType(v)
		filter.Type = &orderType
	}
	if v := c.Query("callCount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.CallCount = &n
	}
	return filter, nil
}

// Queue handles GET /api/operator/queue.
func (h *OperatorHandler) Queue(c *gin.Context) {
	filter, err := queueFilter(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	orders, err := h.assignment.QueueOrders(c.Request.Context(), CurrentMarket(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponses(orders))
}

// StreamQueue handles GET /api/operator/queue/stream, pushing pending queue
// snapshots over server-sent events until the client disconnects.
func (h *OperatorHandler) StreamQueue(c *gin.Context) {
	snapshots, cancel := h.assignment.SubscribeQueue(CurrentMarket(c))
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("queue", dto.NewOrderResponses(snapshot))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Claim handles POST /api/operator/orders/claim.
func (h *OperatorHandler) Claim(c *gin.Context) {
	filter, err := queueFilter(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user := CurrentUser(c)
	order, err := h.assignment.ClaimNext(c.Request.Context(), CurrentMarket(c), user.DisplayName, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// Current handles GET /api/operator/orders/current.
func (h *OperatorHandler) Current(c *gin.Context) {
	user := CurrentUser(c)
	order, err := h.assignment.CurrentOrder(c.Request.Context(), CurrentMarket(c), user.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// Create handles POST /api/operator/orders.
func (h *OperatorHandler) Create(c *gin.Context) {
	var req dto.OrderEditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	orderType := model.OrderTypeSuccess
	if v := c.Query("type"); v != "" {
		orderType = model.OrderType(v)
	}

	user := CurrentUser(c)
	order, err := h.orders.CreateOrder(c.Request.Context(), CurrentMarket(c), user.DisplayName, req.Edits(), orderType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}

// Update handles PUT /api/operator/orders/:id.
func (h *OperatorHandler) Update(c *gin.Context) {
	var req dto.OrderEditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user := CurrentUser(c)
	order, err := h.lifecycle.UpdateOrder(c.Request.Context(), CurrentMarket(c), c.Param("id"), user.DisplayName, req.Edits())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// Confirm handles POST /api/operator/orders/:id/confirm.
func (h *OperatorHandler) Confirm(c *gin.Context) {
	user := CurrentUser(c)
	archived, err := h.lifecycle.ConfirmOrder(c.Request.Context(), CurrentMarket(c), c.Param("id"), user.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSentOrderResponse(archived))
}

// Cancel handles POST /api/operator/orders/:id/cancel.
func (h *OperatorHandler) Cancel(c *gin.Context) {
	h.resolve(c, model.OrderStatusCancelled)
}

// CallLater handles POST /api/operator/orders/:id/call-later.
func (h *OperatorHandler) CallLater(c *gin.Context) {
	h.resolve(c, model.OrderStatusCallLater)
}

func (h *OperatorHandler) resolve(c *gin.Context, target model.OrderStatus) {
	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user := CurrentUser(c)
	order, err := h.lifecycle.ResolveOrder(c.Request.Context(), CurrentMarket(c), c.Param("id"), user.DisplayName, target, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// Release handles POST /api/operator/orders/:id/release.
func (h *OperatorHandler) Release(c *gin.Context) {
	user := CurrentUser(c)
	order, err := h.lifecycle.ReleaseOrder(c.Request.Context(), CurrentMarket(c), c.Param("id"), user.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// Close handles POST /api/operator/orders/:id/close: persist pending edits,
// then return the order to the queue.
func (h *OperatorHandler) Close(c *gin.Context) {
	var req dto.OrderEditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user := CurrentUser(c)
	order, err := h.lifecycle.SaveAndCloseOrder(c.Request.Context(), CurrentMarket(c), c.Param("id"), user.DisplayName, req.Edits())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}
