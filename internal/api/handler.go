package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog   *service.CatalogService
	cart      *service.CartService
	checkout  *service.CheckoutService
	orders    *service.OrderService
	delivery  *service.DeliveryService
	coupons   *service.CouponService
	settings  *service.SettingsService
	finance   *service.FinanceService
	inventory *service.InventoryService
	hub       *Hub
	jwtSecret string
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	cart *service.CartService,
	checkout *service.CheckoutService,
	orders *service.OrderService,
	delivery *service.DeliveryService,
	coupons *service.CouponService,
	settings *service.SettingsService,
	finance *service.FinanceService,
	inventory *service.InventoryService,
	hub *Hub,
	jwtSecret string,
) *Handler {
	return &Handler{
		catalog:   catalog,
		cart:      cart,
		checkout:  checkout,
		orders:    orders,
		delivery:  delivery,
		coupons:   coupons,
		settings:  settings,
		finance:   finance,
		inventory: inventory,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(corsMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/ws/events", h.hub.Serve)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/menu", h.getMenu)
		v1.GET("/products/:id", h.getProduct)
		v1.POST("/products/:id/toggle-option", h.toggleOption)
		v1.GET("/status", h.getStatus)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addCartItem)
		v1.PATCH("/cart/items/:key", h.updateCartItem)
		v1.DELETE("/cart", h.clearCart)

		v1.POST("/delivery/quote", h.quoteDelivery)
		v1.POST("/coupons/preview", h.previewCoupon)
		v1.POST("/checkout", h.doCheckout)
		v1.GET("/orders", h.listOrdersByPhone)
	}

	admin := router.Group("/api/v1/admin", adminAuth(h.jwtSecret))
	{
		admin.GET("/orders", h.adminListOrders)
		admin.GET("/orders/board", h.orderBoard)
		admin.GET("/orders/kitchen", h.kitchenBoard)
		admin.GET("/orders/:id", h.adminGetOrder)
		admin.POST("/orders/:id/advance", h.advanceOrder)
		admin.POST("/orders/:id/cancel", h.cancelOrder)

		admin.GET("/categories", h.listCategories)
		admin.POST("/categories", h.createCategory)
		admin.PUT("/categories/:id", h.updateCategory)
		admin.DELETE("/categories/:id", h.deleteCategory)

		admin.GET("/products", h.listProducts)
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.DELETE("/products/:id", h.deleteProduct)
		admin.POST("/products/:id/option-groups", h.createOptionGroup)
		admin.DELETE("/option-groups/:id", h.deleteOptionGroup)
		admin.POST("/option-groups/:id/options", h.createOption)
		admin.DELETE("/options/:id", h.deleteOption)
		admin.POST("/products/:id/ingredients", h.createIngredient)
		admin.DELETE("/ingredients/:id", h.deleteIngredient)

		admin.GET("/zones", h.listZones)
		admin.POST("/zones", h.createZone)
		admin.PUT("/zones/:id", h.updateZone)
		admin.PATCH("/zones/:id/active", h.setZoneActive)
		admin.DELETE("/zones/:id", h.deleteZone)

		admin.GET("/coupons", h.listCoupons)
		admin.POST("/coupons", h.createCoupon)
		admin.PUT("/coupons/:id", h.updateCoupon)
		admin.PATCH("/coupons/:id/active", h.setCouponActive)
		admin.DELETE("/coupons/:id", h.deleteCoupon)

		admin.GET("/settings", h.getSettings)
		admin.PUT("/settings", h.updateSettings)
		admin.POST("/settings/toggle", h.toggleStore)
		admin.POST("/settings/address", h.setStoreAddress)

		admin.GET("/finance/closing", h.dailyClosing)
		admin.GET("/finance/closing/export", h.exportClosing)

		admin.GET("/inventory", h.listInventory)
		admin.POST("/inventory", h.createInventoryItem)
		admin.GET("/inventory/:id/movements", h.listMovements)
		admin.POST("/inventory/:id/movements", h.recordMovement)
		admin.GET("/expenses", h.listExpenses)
		admin.POST("/expenses", h.createExpense)
		admin.DELETE("/expenses/:id", h.deleteExpense)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// sessionID identifies the anonymous storefront session carrying the cart.
func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Session-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing X-Session-ID header"})
		return "", false
	}
	return id, true
}

// respondError maps domain errors to status codes and customer-facing
// messages.
func respondError(c *gin.Context, err error) {
	var couponErr *pricing.CouponError
	switch {
	case errors.Is(err, pricing.ErrStoreClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Loja fechada no momento", "code": "store_closed"})
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Carrinho vazio", "code": "empty_cart"})
	case errors.Is(err, pricing.ErrNotServiceable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Endereço fora da área de entrega", "code": "not_serviceable"})
	case errors.Is(err, pricing.ErrDeliveryFeeUnresolved):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Taxa de entrega não calculada", "code": "delivery_fee_unresolved"})
	case errors.As(err, &couponErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": couponMessage(couponErr),
			"code":  "coupon_" + string(couponErr.Reason),
		})
	case errors.Is(err, pricing.ErrInvalidSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_selection"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "invalid_transition"})
	case errors.Is(err, service.ErrCartLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item não encontrado no carrinho", "code": "cart_line_not_found"})
	case errors.Is(err, service.ErrGeocodeFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Endereço não encontrado", "code": "geocode_failed"})
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "Não encontrado", "code": "not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno", "details": err.Error()})
	}
}

func couponMessage(e *pricing.CouponError) string {
	switch e.Reason {
	case pricing.CouponNotFound:
		return "Cupom inválido"
	case pricing.CouponExpired:
		return fmt.Sprintf("Cupom expirado em %s", e.ExpiredAt.Format("02/01/2006"))
	case pricing.CouponBelowMinimum:
		return fmt.Sprintf("Pedido mínimo de %s para este cupom", service.FormatBRL(e.MinOrderValue))
	case pricing.CouponExhausted:
		return "Cupom esgotado"
	}
	return "Cupom recusado"
}

// --- storefront ---

func (h *Handler) getMenu(c *gin.Context) {
	menu, err := h.catalog.Menu(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": menu})
}

func (h *Handler) getProduct(c *gin.Context) {
	detail, err := h.catalog.ProductDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) toggleOption(c *gin.Context) {
	var req struct {
		Selected []models.SelectedOption `json:"selected"`
		OptionID string                  `json:"option_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	preview, err := h.catalog.ToggleOption(c.Request.Context(), c.Param("id"), req.Selected, req.OptionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.settings.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) getCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	cart, err := h.cart.Get(c.Request.Context(), sid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

func (h *Handler) addCartItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req service.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	cart, err := h.cart.AddItem(c.Request.Context(), sid, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

func (h *Handler) updateCartItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	cart, err := h.cart.UpdateQuantity(c.Request.Context(), sid, c.Param("key"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

func (h *Handler) clearCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.cart.Clear(c.Request.Context(), sid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func cartResponse(cart *pricing.Cart) gin.H {
	return gin.H{
		"items":       cart.Items,
		"subtotal":    cart.Subtotal(),
		"total_items": cart.TotalItems(),
	}
}

func (h *Handler) quoteDelivery(c *gin.Context) {
	var req struct {
		Lat float64 `json:"lat" binding:"required"`
		Lng float64 `json:"lng" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	quote, err := h.delivery.QuoteFee(c.Request.Context(), req.Lat, req.Lng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *Handler) previewCoupon(c *gin.Context) {
	var req struct {
		Code     string `json:"code" binding:"required"`
		Subtotal int64  `json:"subtotal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	preview, err := h.coupons.Preview(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *Handler) doCheckout(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.checkout.Checkout(c.Request.Context(), sid, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) listOrdersByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing phone query parameter"})
		return
	}
	orders, err := h.orders.ListByPhone(c.Request.Context(), phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// --- admin: orders ---

func (h *Handler) adminListOrders(c *gin.Context) {
	status := c.DefaultQuery("status", models.StatusPending)
	orders, err := h.orders.ListByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) adminGetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) orderBoard(c *gin.Context) {
	board, err := h.orders.Board(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}

func (h *Handler) kitchenBoard(c *gin.Context) {
	tickets, err := h.orders.KitchenBoard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (h *Handler) advanceOrder(c *gin.Context) {
	order, err := h.orders.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) cancelOrder(c *gin.Context) {
	order, err := h.orders.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// --- admin: catalog ---

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) createCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.catalog.CreateCategory(c.Request.Context(), &cat); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *Handler) updateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	cat.ID = c.Param("id")
	if err := h.catalog.UpdateCategory(c.Request.Context(), &cat); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) createProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.catalog.CreateProduct(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	p.ID = c.Param("id")
	if err := h.catalog.UpdateProduct(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createOptionGroup(c *gin.Context) {
	var g models.OptionGroup
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	g.ProductID = c.Param("id")
	if err := h.catalog.CreateOptionGroup(c.Request.Context(), &g); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *Handler) deleteOptionGroup(c *gin.Context) {
	if err := h.catalog.DeleteOptionGroup(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createOption(c *gin.Context) {
	var o models.Option
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	o.GroupID = c.Param("id")
	if err := h.catalog.CreateOption(c.Request.Context(), &o); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) deleteOption(c *gin.Context) {
	if err := h.catalog.DeleteOption(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createIngredient(c *gin.Context) {
	var ing models.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	ing.ProductID = c.Param("id")
	if err := h.catalog.CreateIngredient(c.Request.Context(), &ing); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ing)
}

func (h *Handler) deleteIngredient(c *gin.Context) {
	if err := h.catalog.DeleteIngredient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- admin: delivery zones ---

func (h *Handler) listZones(c *gin.Context) {
	zones, err := h.delivery.ListZones(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"zones": zones})
}

func (h *Handler) createZone(c *gin.Context) {
	var z models.DeliveryZone
	if err := c.ShouldBindJSON(&z); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.delivery.CreateZone(c.Request.Context(), &z); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, z)
}

func (h *Handler) updateZone(c *gin.Context) {
	var z models.DeliveryZone
	if err := c.ShouldBindJSON(&z); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	z.ID = c.Param("id")
	if err := h.delivery.UpdateZone(c.Request.Context(), &z); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, z)
}

func (h *Handler) setZoneActive(c *gin.Context) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.delivery.SetZoneActive(c.Request.Context(), c.Param("id"), req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteZone(c *gin.Context) {
	if err := h.delivery.DeleteZone(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- admin: coupons ---

func (h *Handler) listCoupons(c *gin.Context) {
	coupons, err := h.coupons.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

func (h *Handler) createCoupon(c *gin.Context) {
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.coupons.Create(c.Request.Context(), &coupon); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (h *Handler) updateCoupon(c *gin.Context) {
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	coupon.ID = c.Param("id")
	if err := h.coupons.Update(c.Request.Context(), &coupon); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func (h *Handler) setCouponActive(c *gin.Context) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.coupons.SetActive(c.Request.Context(), c.Param("id"), req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteCoupon(c *gin.Context) {
	if err := h.coupons.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- admin: settings ---

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) toggleStore(c *gin.Context) {
	var req struct {
		Open bool `json:"open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	st, err := h.settings.ToggleOpen(c.Request.Context(), req.Open)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) setStoreAddress(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	settings, err := h.delivery.SetStoreAddress(c.Request.Context(), req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// --- admin: finance ---

func closingDay(c *gin.Context) (time.Time, bool) {
	dateStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

func (h *Handler) dailyClosing(c *gin.Context) {
	day, ok := closingDay(c)
	if !ok {
		return
	}
	closing, err := h.finance.Closing(c.Request.Context(), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, closing)
}

func (h *Handler) exportClosing(c *gin.Context) {
	day, ok := closingDay(c)
	if !ok {
		return
	}
	data, err := h.finance.ExportClosingXLSX(c.Request.Context(), day)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("fechamento-%s.xlsx", day.Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// --- admin: inventory ---

func (h *Handler) listInventory(c *gin.Context) {
	items, err := h.inventory.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) createInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.inventory.CreateItem(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) listMovements(c *gin.Context) {
	movements, err := h.inventory.ListMovements(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements})
}

func (h *Handler) recordMovement(c *gin.Context) {
	var txn models.InventoryTransaction
	if err := c.ShouldBindJSON(&txn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	txn.ItemID = c.Param("id")
	if err := h.inventory.RecordMovement(c.Request.Context(), &txn); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func (h *Handler) listExpenses(c *gin.Context) {
	expenses, err := h.inventory.ListExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *Handler) createExpense(c *gin.Context) {
	var e models.Expense
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	if err := h.inventory.CreateExpense(c.Request.Context(), &e); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) deleteExpense(c *gin.Context) {
	if err := h.inventory.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
