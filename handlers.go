package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/pos_frontend/api"
	"bitbucket.org/mmdatafocus/pos_frontend/cart"
	"bitbucket.org/mmdatafocus/pos_frontend/config"
	"bitbucket.org/mmdatafocus/pos_frontend/drafts"
	"bitbucket.org/mmdatafocus/pos_frontend/models"
	"bitbucket.org/mmdatafocus/pos_frontend/suggest"
	"bitbucket.org/mmdatafocus/pos_frontend/utils"
)

type app struct {
	api       *api.Client
	suggester *suggest.Suggester
	registry  *drafts.Registry
	logger    *logrus.Logger
}

func newApp(client *api.Client, suggester *suggest.Suggester) *app {
	return &app{
		api:       client,
		suggester: suggester,
		registry:  drafts.NewRegistry(),
		logger:    config.GetLogger(),
	}
}

// requireSession resolves the caller's session and draft state. Draft-sale
// endpoints need a token: drafts are keyed by session, and stock-dependent
// mutations cannot run without a catalog to check against.
func (a *app) requireSession(c *gin.Context) (api.Session, *drafts.SessionDrafts, bool) {
	sess := api.SessionFromContext(c.Request.Context())
	if !sess.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return api.Session{}, nil, false
	}
	return sess, a.registry.Get(sess.Token), true
}

// refreshCatalog fetches the latest catalog through the session's snapshot
// holder. Last response wins: a commit loses silently when a newer fetch
// was issued meanwhile. On a successful install the cart is re-clamped and
// the form draft re-pointed at the new snapshot.
func (a *app) refreshCatalog(c *gin.Context, sess api.Session, sd *drafts.SessionDrafts, categoryID int) (*cart.Snapshot, error) {
	ticket := sd.Catalog.Begin()
	products, err := a.api.GetProducts(c.Request.Context(), sess, categoryID)
	if err != nil {
		return nil, err
	}
	snap := cart.NewSnapshot(products)
	if sd.Catalog.Commit(ticket, snap) {
		sd.Cart.Refresh(snap)
		sd.Form.SetSnapshot(snap)
	}
	current, ok := sd.Catalog.Current()
	if !ok {
		return nil, cart.ErrSnapshotUnavailable
	}
	return current, nil
}

// upstreamError translates api client failures into responses. Server
// rejections carry the upstream's message verbatim; the draft state the
// handler was operating on is always left untouched by the caller.
func (a *app) upstreamError(c *gin.Context, funcName string, err error) {
	var rejected *api.ServerRejectedError
	switch {
	case errors.Is(err, api.ErrMissingCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.As(err, &rejected):
		c.JSON(http.StatusBadRequest, gin.H{"error": rejected.Message})
	case errors.Is(err, api.ErrNetwork):
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not connect to the server, please try again later"})
	default:
		config.LogError(a.logger, "handlers", funcName, "upstream call", nil, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed"})
	}
}

// --- catalog, sales and dashboard proxies ---

func (a *app) listProducts(c *gin.Context) {
	sess := api.SessionFromContext(c.Request.Context())
	categoryID, _ := strconv.Atoi(c.Query("categoryId"))

	products, err := a.api.GetProducts(c.Request.Context(), sess, categoryID)
	if err != nil {
		a.upstreamError(c, "listProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (a *app) listCategories(c *gin.Context) {
	sess := api.SessionFromContext(c.Request.Context())
	categories, err := a.api.GetCategories(c.Request.Context(), sess)
	if err != nil {
		a.upstreamError(c, "listCategories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (a *app) listSales(c *gin.Context) {
	sess := api.SessionFromContext(c.Request.Context())
	sales, err := a.api.GetSales(c.Request.Context(), sess)
	if err != nil {
		a.upstreamError(c, "listSales", err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (a *app) getSale(c *gin.Context) {
	sess := api.SessionFromContext(c.Request.Context())
	saleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || saleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale id"})
		return
	}
	sale, err := a.api.GetSaleByID(c.Request.Context(), sess, saleID)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		a.upstreamError(c, "getSale", err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (a *app) dashboardStats(c *gin.Context) {
	sess := api.SessionFromContext(c.Request.Context())
	stats, err := a.api.GetDashboardStats(c.Request.Context(), sess)
	if err != nil {
		a.upstreamError(c, "dashboardStats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *app) topSelling(c *gin.Context) {
	sess := api.SessionFromContext(c.Request.Context())
	top, err := a.api.GetTopSelling(c.Request.Context(), sess)
	if err != nil {
		a.upstreamError(c, "topSelling", err)
		return
	}
	c.JSON(http.StatusOK, top)
}

func (a *app) reorderAlerts(c *gin.Context) {
	sess := api.SessionFromContext(c.Request.Context())
	alerts, err := a.api.GetReorderAlerts(c.Request.Context(), sess)
	if err != nil {
		a.upstreamError(c, "reorderAlerts", err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// --- POS cart ---

type cartItemView struct {
	ProductId     int             `json:"productId"`
	ProductName   string          `json:"productName"`
	PricePerUnit  decimal.Decimal `json:"pricePerUnit"`
	Quantity      int             `json:"quantity"`
	StockQuantity int             `json:"stockQuantity"`
}

func cartView(sd *drafts.SessionDrafts) gin.H {
	entries := sd.Cart.Items()
	items := make([]cartItemView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, cartItemView{
			ProductId:     entry.Product.ID,
			ProductName:   entry.Product.ProductName,
			PricePerUnit:  entry.Product.PricePerUnit,
			Quantity:      entry.Quantity,
			StockQuantity: entry.Product.StockQuantity,
		})
	}
	return gin.H{
		"draftId": sd.ID,
		"items":   items,
		"total":   sd.Cart.Total(),
	}
}

func (a *app) getCart(c *gin.Context) {
	_, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	sd.Lock()
	defer sd.Unlock()
	c.JSON(http.StatusOK, cartView(sd))
}

type addCartItemRequest struct {
	ProductId int `json:"productId" binding:"required,gt=0"`
}

func (a *app) addCartItem(c *gin.Context) {
	sess, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sd.Lock()
	defer sd.Unlock()

	snap, err := a.refreshCatalog(c, sess, sd, 0)
	if err != nil {
		a.upstreamError(c, "addCartItem", err)
		return
	}
	product, found := snap.Product(req.ProductId)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	if err := sd.Cart.Add(product); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cartView(sd))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (a *app) setCartQuantity(c *gin.Context) {
	sess, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sd.Lock()
	defer sd.Unlock()

	if _, err := a.refreshCatalog(c, sess, sd, 0); err != nil {
		a.upstreamError(c, "setCartQuantity", err)
		return
	}

	if err := sd.Cart.SetQuantity(productID, req.Quantity); err != nil {
		var limit *cart.OutOfStockLimitError
		if errors.As(err, &limit) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "max": limit.Max})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cartView(sd))
}

func (a *app) removeCartItem(c *gin.Context) {
	_, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	sd.Lock()
	defer sd.Unlock()
	sd.Cart.Remove(productID)
	c.JSON(http.StatusOK, cartView(sd))
}

func (a *app) clearCart(c *gin.Context) {
	_, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	sd.Lock()
	defer sd.Unlock()
	sd.Cart.Clear()
	c.Status(http.StatusNoContent)
}

type checkoutRequest struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	CustomerName  string               `json:"customerName"`
	CustomerPhone string               `json:"customerPhone"`
}

func (a *app) checkoutCart(c *gin.Context) {
	sess, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sd.Lock()
	defer sd.Unlock()

	entries := sd.Cart.Items()
	if len(entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	items := make([]models.NewSaleItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, models.NewSaleItem{ProductId: entry.Product.ID, Quantity: entry.Quantity})
	}
	sale := models.NewSale{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
		Discount:      decimal.Zero,
		Tax:           decimal.Zero,
		PaymentMethod: req.PaymentMethod,
	}

	confirmation, err := a.api.SubmitSale(c.Request.Context(), sess, sale)
	if err != nil {
		// The cart is preserved untouched so the user can retry.
		a.upstreamError(c, "checkoutCart", err)
		return
	}

	sd.Cart.Clear()
	c.JSON(http.StatusCreated, confirmation)
}

// --- multi-row sales form ---

type formRowView struct {
	Index            int    `json:"index"`
	ProductId        int    `json:"productId"`
	Quantity         int    `json:"quantity"`
	AvailableStock   int    `json:"availableStock"`
	AvailableDisplay int    `json:"availableDisplay"`
	Error            string `json:"error,omitempty"`
}

func formView(sd *drafts.SessionDrafts) gin.H {
	rows := sd.Form.Rows()
	views := make([]formRowView, 0, len(rows))
	for i, row := range rows {
		view := formRowView{Index: i, ProductId: row.ProductId, Quantity: row.Quantity}
		if row.ProductId > 0 {
			if available, err := sd.Form.AvailableStock(row.ProductId, i); err == nil {
				view.AvailableStock = available
				// Display is clamped; the true remainder drives validation.
				if available > 0 {
					view.AvailableDisplay = available
				}
			}
		}
		if err := sd.Form.ValidateRow(i); err != nil {
			view.Error = err.Error()
		}
		views = append(views, view)
	}
	totals := cart.CalculateTotals(cart.DraftItems(sd.Form), sd.Form.Discount, sd.Form.TaxPercent)
	return gin.H{
		"draftId": sd.ID,
		"rows":    views,
		"totals":  totals,
	}
}

func (a *app) getSalesForm(c *gin.Context) {
	_, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	sd.Lock()
	defer sd.Unlock()
	c.JSON(http.StatusOK, formView(sd))
}

func (a *app) appendFormRow(c *gin.Context) {
	sess, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	sd.Lock()
	defer sd.Unlock()

	if _, err := a.refreshCatalog(c, sess, sd, 0); err != nil {
		a.upstreamError(c, "appendFormRow", err)
		return
	}
	index := sd.Form.AppendRow()
	c.JSON(http.StatusCreated, gin.H{"index": index})
}

type updateRowRequest struct {
	ProductId *int `json:"productId"`
	Quantity  *int `json:"quantity"`
}

func (a *app) updateFormRow(c *gin.Context) {
	sess, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
		return
	}
	var req updateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sd.Lock()
	defer sd.Unlock()

	if _, err := a.refreshCatalog(c, sess, sd, 0); err != nil {
		a.upstreamError(c, "updateFormRow", err)
		return
	}

	if req.ProductId != nil {
		if !sd.Form.SetRowProduct(index, *req.ProductId) {
			c.JSON(http.StatusNotFound, gin.H{"error": "row not found"})
			return
		}
	}
	if req.Quantity != nil {
		if !sd.Form.SetRowQuantity(index, *req.Quantity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "row not found"})
			return
		}
	}
	c.JSON(http.StatusOK, formView(sd))
}

func (a *app) deleteFormRow(c *gin.Context) {
	_, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
		return
	}

	sd.Lock()
	defer sd.Unlock()
	sd.Form.RemoveRow(index)
	c.JSON(http.StatusOK, formView(sd))
}

type adjustmentsRequest struct {
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
}

// setAdjustments is the form boundary where discount and tax are clamped to
// zero or above; the checkout calculator itself never re-validates sign.
func (a *app) setAdjustments(c *gin.Context) {
	_, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	var req adjustmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Discount.IsNegative() {
		req.Discount = decimal.Zero
	}
	if req.Tax.IsNegative() {
		req.Tax = decimal.Zero
	}

	sd.Lock()
	defer sd.Unlock()
	sd.Form.Discount = req.Discount
	sd.Form.TaxPercent = req.Tax
	c.JSON(http.StatusOK, formView(sd))
}

type submitFormRequest struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	CustomerName  string               `json:"customerName"`
	CustomerPhone string               `json:"customerPhone"`
}

func (a *app) submitSalesForm(c *gin.Context) {
	sess, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	var req submitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sd.Lock()
	defer sd.Unlock()

	// Validate against the freshest catalog; the draft, not the catalog, is
	// the unit of truth for stock spoken for by sibling rows.
	if _, err := a.refreshCatalog(c, sess, sd, 0); err != nil {
		a.upstreamError(c, "submitSalesForm", err)
		return
	}

	if err := sd.Form.ValidateDraft(); err != nil {
		var rowErrs cart.ValidationErrors
		if errors.As(err, &rowErrs) {
			out := make([]gin.H, 0, len(rowErrs))
			for _, rowErr := range rowErrs {
				out = append(out, gin.H{"row": rowErr.Row, "error": rowErr.Err.Error()})
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "draft has invalid rows", "rows": out})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	rows := sd.Form.Rows()
	items := make([]models.NewSaleItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.NewSaleItem{ProductId: row.ProductId, Quantity: row.Quantity})
	}
	sale := models.NewSale{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
		Discount:      sd.Form.Discount,
		Tax:           sd.Form.TaxPercent,
		PaymentMethod: req.PaymentMethod,
	}

	confirmation, err := a.api.SubmitSale(c.Request.Context(), sess, sale)
	if err != nil {
		// Rows and adjustments stay exactly as they were for a manual retry.
		a.upstreamError(c, "submitSalesForm", err)
		return
	}

	sd.Form.Clear()
	c.JSON(http.StatusCreated, confirmation)
}

func (a *app) cancelSalesForm(c *gin.Context) {
	_, sd, ok := a.requireSession(c)
	if !ok {
		return
	}
	sd.Lock()
	defer sd.Unlock()
	sd.Form.Clear()
	c.Status(http.StatusNoContent)
}

// --- reorder suggestion ---

func (a *app) suggestReorder(c *gin.Context) {
	if _, _, ok := a.requireSession(c); !ok {
		return
	}
	var input models.SuggestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := a.suggester.Suggest(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, suggest.ErrSuggestionUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not generate a suggestion, please try again"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
