package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/billing"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httpresp"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/middleware"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type HelperHandler struct {
	db *gorm.DB
}

func NewHelperHandler(db *gorm.DB) *HelperHandler {
	return &HelperHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateHelperRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	PayoutMode  string  `json:"payout_mode"`
	PayoutValue float64 `json:"payout_value"`
}

type UpdateHelperRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`

	PayoutMode  *string  `json:"payout_mode"`
	PayoutValue *float64 `json:"payout_value"`

	Active *bool `json:"active"`
}

type CreateHelperLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *HelperHandler) List(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var helpers []models.Helper
	if err := h.db.
		Where("account_id = ?", accountID).
		Order("name ASC").
		Find(&helpers).Error; err != nil {
		httperr.Internal(c, "helper_list_failed", "Erro ao listar diaristas.")
		return
	}

	httpresp.List(c, helpers)
}

func (h *HelperHandler) Get(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var helper models.Helper
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&helper).Error; err != nil {
		httperr.NotFound(c, "helper_not_found", "Diarista não encontrada.")
		return
	}

	httpresp.OK(c, helper)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *HelperHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateHelperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	mode := billing.PayoutMode(req.PayoutMode)
	if req.PayoutMode == "" {
		mode = billing.PayoutFixed
	}
	if !billing.ValidPayoutMode(mode) {
		httperr.BadRequest(c, "invalid_payout_mode", "Modo de repasse inválido.")
		return
	}

	helper := models.Helper{
		AccountID:   accountID,
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Email:       req.Email,
		PayoutMode:  string(mode),
		PayoutValue: req.PayoutValue,
		Active:      true,
	}

	if err := h.db.Create(&helper).Error; err != nil {
		httperr.Internal(c, "helper_create_failed", "Erro ao criar diarista.")
		return
	}

	c.JSON(201, helper)
}

func (h *HelperHandler) Update(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var helper models.Helper
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&helper).Error; err != nil {
		httperr.NotFound(c, "helper_not_found", "Diarista não encontrada.")
		return
	}

	var req UpdateHelperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		helper.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		helper.Phone = *req.Phone
	}
	if req.Email != nil {
		helper.Email = *req.Email
	}
	if req.PayoutMode != nil {
		if !billing.ValidPayoutMode(billing.PayoutMode(*req.PayoutMode)) {
			httperr.BadRequest(c, "invalid_payout_mode", "Modo de repasse inválido.")
			return
		}
		helper.PayoutMode = *req.PayoutMode
	}
	if req.PayoutValue != nil {
		helper.PayoutValue = *req.PayoutValue
	}
	if req.Active != nil {
		helper.Active = *req.Active
	}

	if err := h.db.Save(&helper).Error; err != nil {
		httperr.Internal(c, "helper_update_failed", "Erro ao atualizar diarista.")
		return
	}

	httpresp.OK(c, helper)
}

// ======================================================
// FEE PREVIEW
// ======================================================

// FeePreview devolve o repasse que seria derivado para um preço
// hipotético, usando a política atual da diarista. A UI mostra o valor
// ao lado do campo de preço antes de salvar.
func (h *HelperHandler) FeePreview(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	price, err := strconv.ParseFloat(c.Query("price"), 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_price", "Preço inválido.")
		return
	}

	var helper models.Helper
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&helper).Error; err != nil {
		httperr.NotFound(c, "helper_not_found", "Diarista não encontrada.")
		return
	}

	fee, ok := billing.ResolveHelperFee(price, billing.PayoutMode(helper.PayoutMode), helper.PayoutValue)
	if !ok {
		// preço não definido: sem repasse, não é erro
		c.JSON(200, gin.H{"computed": false})
		return
	}

	c.JSON(200, gin.H{
		"computed":     true,
		"fee":          fee,
		"payout_mode":  helper.PayoutMode,
		"payout_value": helper.PayoutValue,
	})
}

// ======================================================
// LOGIN DA DIARISTA (visão mobile)
// ======================================================

func (h *HelperHandler) CreateLogin(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var helper models.Helper
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&helper).Error; err != nil {
		httperr.NotFound(c, "helper_not_found", "Diarista não encontrada.")
		return
	}

	var req CreateHelperLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar login.")
		return
	}

	user := models.User{
		AccountID:    accountID,
		Name:         helper.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        helper.Phone,
		Role:         models.RoleHelper,
		HelperID:     &helper.ID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar login.")
		return
	}

	c.JSON(201, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"role":      user.Role,
		"helper_id": helper.ID,
	})
}
