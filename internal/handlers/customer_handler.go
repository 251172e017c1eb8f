package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httpresp"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/middleware"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCustomerRequest struct {
	Name         string   `json:"name" binding:"required"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Address      string   `json:"address"`
	DefaultPrice *float64 `json:"default_price"`
	Notes        string   `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name         *string  `json:"name"`
	Phone        *string  `json:"phone"`
	Email        *string  `json:"email"`
	Address      *string  `json:"address"`
	DefaultPrice *float64 `json:"default_price"`
	Notes        *string  `json:"notes"`
}

// ======================================================
// LIST (com busca por nome/telefone)
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	q := h.db.Where("account_id = ?", accountID)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		httperr.Internal(c, "customer_list_failed", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, customers)
}

// ======================================================
// GET
// ======================================================

func (h *CustomerHandler) Get(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&customer).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Cliente não encontrado.")
		return
	}

	httpresp.OK(c, customer)
}

// ======================================================
// CREATE
// ======================================================

func (h *CustomerHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	customer := models.Customer{
		AccountID:    accountID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		DefaultPrice: req.DefaultPrice,
		Notes:        req.Notes,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		httperr.Internal(c, "customer_create_failed", "Erro ao criar cliente.")
		return
	}

	c.JSON(201, customer)
}

// ======================================================
// UPDATE
// ======================================================

func (h *CustomerHandler) Update(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&customer).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Cliente não encontrado.")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.DefaultPrice != nil {
		customer.DefaultPrice = req.DefaultPrice
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := h.db.Save(&customer).Error; err != nil {
		httperr.Internal(c, "customer_update_failed", "Erro ao atualizar cliente.")
		return
	}

	httpresp.OK(c, customer)
}
