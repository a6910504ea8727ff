package handler

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rl1809/stockroom/internal/adapter/importer"
	"github.com/rl1809/stockroom/internal/core/domain"
	"github.com/rl1809/stockroom/internal/core/service"
)

type HTTPHandler struct {
	inventory *service.InventoryService
}

type ItemRequest struct {
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Unit         string          `json:"unit"`
	CustomFields map[string]any  `json:"custom_fields"`
}

// QuantityRequest uses a pointer so an explicit zero passes the required check.
type QuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type FieldValueRequest struct {
	Value any `json:"value"`
}

type FieldRequest struct {
	Name string `json:"name" binding:"required"`
}

type ItemResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Quantity     int            `json:"quantity"`
	Price        string         `json:"price"`
	Unit         string         `json:"unit"`
	AddedAt      time.Time      `json:"added_at"`
	CustomFields map[string]any `json:"custom_fields"`
}

type AlertResponse struct {
	Message   string `json:"message"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

type MutationResponse struct {
	TransactionID string         `json:"transaction_id"`
	Type          string         `json:"type"`
	Item          ItemResponse   `json:"item"`
	Alert         *AlertResponse `json:"alert,omitempty"`
}

type TransactionResponse struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	ItemID   string        `json:"item_id"`
	Item     ItemResponse  `json:"item"`
	Previous *ItemResponse `json:"previous,omitempty"`
	Quantity int           `json:"quantity,omitempty"`
	At       time.Time     `json:"at"`
}

type DashboardResponse struct {
	ItemCount  int      `json:"item_count"`
	TotalValue string   `json:"total_value"`
	Categories []string `json:"categories"`
}

func NewHTTPHandler(inventory *service.InventoryService) *HTTPHandler {
	return &HTTPHandler{inventory: inventory}
}

// Register mounts every route on r.
func (h *HTTPHandler) Register(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")
	api.GET("/items", h.ListItems)
	api.POST("/items", h.AddItem)
	api.GET("/items/:id", h.GetItem)
	api.PUT("/items/:id", h.EditItem)
	api.DELETE("/items/:id", h.RemoveItem)
	api.POST("/items/:id/sell", h.Sell)
	api.POST("/items/:id/restock", h.Restock)
	api.PUT("/items/:id/fields/:field", h.SetItemField)
	api.PUT("/positions/:index", h.EditItemAt)
	api.GET("/lookup", h.Lookup)
	api.GET("/fields", h.ListFields)
	api.POST("/fields", h.RegisterField)
	api.GET("/search", h.Search)
	api.GET("/dashboard", h.Dashboard)
	api.GET("/transactions", h.Transactions)
	api.GET("/ages", h.Ages)
	api.GET("/export.csv", h.ExportCSV)
	api.POST("/import", h.Import)
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, toItemResponses(h.inventory.ListInventory()))
}

func (h *HTTPHandler) GetItem(c *gin.Context) {
	item, err := h.inventory.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *HTTPHandler) AddItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.inventory.Add(c.Request.Context(), req.fields())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMutationResponse(res))
}

func (h *HTTPHandler) EditItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.inventory.Edit(c.Request.Context(), c.Param("id"), req.fields())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMutationResponse(res))
}

func (h *HTTPHandler) EditItemAt(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.inventory.EditAt(c.Request.Context(), index, req.fields())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMutationResponse(res))
}

func (h *HTTPHandler) RemoveItem(c *gin.Context) {
	res, err := h.inventory.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMutationResponse(res))
}

func (h *HTTPHandler) Sell(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	res, err := h.inventory.Sell(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMutationResponse(res))
}

func (h *HTTPHandler) Restock(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	res, err := h.inventory.Restock(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMutationResponse(res))
}

func (h *HTTPHandler) SetItemField(c *gin.Context) {
	var req FieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.inventory.SetItemCustomField(c.Request.Context(), c.Param("id"), c.Param("field"), req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *HTTPHandler) Lookup(c *gin.Context) {
	id, err := h.inventory.FindByName(c.Query("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *HTTPHandler) ListFields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": h.inventory.CustomFields()})
}

func (h *HTTPHandler) RegisterField(c *gin.Context) {
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	registered := h.inventory.RegisterCustomField(req.Name)
	c.JSON(http.StatusOK, gin.H{"name": req.Name, "registered": registered})
}

func (h *HTTPHandler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, toItemResponses(h.inventory.Search(c.Query("q"))))
}

func (h *HTTPHandler) Dashboard(c *gin.Context) {
	s := h.inventory.Dashboard()
	c.JSON(http.StatusOK, DashboardResponse{
		ItemCount:  s.ItemCount,
		TotalValue: s.TotalValue.StringFixed(2),
		Categories: s.Categories,
	})
}

func (h *HTTPHandler) Transactions(c *gin.Context) {
	txs := h.inventory.ListTransactions()
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp := TransactionResponse{
			ID:       tx.ID,
			Type:     string(tx.Type),
			ItemID:   tx.ItemID,
			Item:     toItemResponse(tx.Item),
			Quantity: tx.Quantity,
			At:       tx.At,
		}
		if tx.Previous != nil {
			prev := toItemResponse(*tx.Previous)
			resp.Previous = &prev
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func (h *HTTPHandler) Ages(c *gin.Context) {
	ages := h.inventory.ItemAges()
	out := make([]gin.H, 0, len(ages))
	for _, a := range ages {
		out = append(out, gin.H{"id": a.ItemID, "name": a.Name, "days": a.Days})
	}
	c.JSON(http.StatusOK, out)
}

func (h *HTTPHandler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="inventory.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.WriteAll(h.inventory.ExportRows()); err != nil {
		c.Error(err)
	}
}

// Import accepts a JSON array, or YAML when the content type says so.
func (h *HTTPHandler) Import(c *gin.Context) {
	format := importer.FormatJSON
	if strings.Contains(c.ContentType(), "yaml") {
		format = importer.FormatYAML
	}

	records, err := importer.Decode(c.Request.Body, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.inventory.ImportBatch(c.Request.Context(), records)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]MutationResponse, 0, len(results))
	for _, res := range results {
		out = append(out, toMutationResponse(res))
	}
	c.JSON(http.StatusCreated, out)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrItemNotFound):
		status = http.StatusNotFound
		message = "item not found"
	case errors.Is(err, service.ErrIndexOutOfRange):
		status = http.StatusNotFound
		message = "item index out of range"
	case errors.Is(err, service.ErrInsufficientStock):
		status = http.StatusConflict
		message = "insufficient stock"
	}

	c.JSON(status, gin.H{"error": message})
}

func (r ItemRequest) fields() domain.ItemFields {
	return domain.ItemFields{
		Name:         r.Name,
		Category:     r.Category,
		Quantity:     r.Quantity,
		Price:        r.Price,
		Unit:         r.Unit,
		CustomFields: r.CustomFields,
	}
}

func toItemResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Category:     item.Category,
		Quantity:     item.Quantity,
		Price:        item.Price.String(),
		Unit:         item.Unit,
		AddedAt:      item.AddedAt,
		CustomFields: item.CustomFields,
	}
}

func toItemResponses(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out
}

func toMutationResponse(res *service.MutationResult) MutationResponse {
	resp := MutationResponse{
		TransactionID: res.Transaction.ID,
		Type:          string(res.Transaction.Type),
		Item:          toItemResponse(res.Item),
	}
	if res.Alert != nil {
		resp.Alert = &AlertResponse{
			Message:   res.Alert.Message(),
			Quantity:  res.Alert.Quantity,
			Threshold: res.Alert.Threshold,
		}
	}
	return resp
}
