package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/dates"
	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httpresp"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/middleware"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
	usecase "github.com/BrilhoLimpeza/cleaning-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUsecases struct {
	Create       *usecase.CreateAppointment
	Update       *usecase.UpdateAppointment
	Start        *usecase.StartAppointment
	Finish       *usecase.FinishAppointment
	Delete       *usecase.DeleteAppointment
	ChangeStatus *usecase.ChangeStatus
	CancelSeries *usecase.CancelSeries

	ListByDate     *usecase.ListAppointmentsByDate
	ListByMonth    *usecase.ListAppointmentsByMonth
	ListByCustomer *usecase.ListAppointmentsByCustomer
}

type AppointmentHandler struct {
	db  *gorm.DB
	ucs AppointmentUsecases
}

func NewAppointmentHandler(db *gorm.DB, ucs AppointmentUsecases) *AppointmentHandler {
	return &AppointmentHandler{db: db, ucs: ucs}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerID uint  `json:"customer_id" binding:"required"`
	HelperID   *uint `json:"helper_id"`

	// Campos separados do formulário de data
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
	Day   int `json:"day" binding:"required"`

	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time"`
	DurationMin *int   `json:"duration_min"`

	Price *float64 `json:"price"`
	Notes string   `json:"notes"`

	IsRecurring    bool   `json:"is_recurring"`
	RecurrenceRule string `json:"recurrence_rule"`

	AlreadyCompleted bool `json:"already_completed"`
}

type UpdateAppointmentRequest struct {
	HelperID     *uint `json:"helper_id"`
	RemoveHelper bool  `json:"remove_helper"`

	Price       *float64 `json:"price"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	DurationMin *int     `json:"duration_min"`
	Notes       *string  `json:"notes"`

	HelperFee        *float64 `json:"helper_fee"`
	FeeOverridden    bool     `json:"fee_overridden"`
	ClearFeeOverride bool     `json:"clear_fee_override"`
}

type ChangeStatusRequest struct {
	Status                 string `json:"status" binding:"required"`
	SendInvoice            bool   `json:"send_invoice"`
	CancelSingleOccurrence bool   `json:"cancel_single_occurrence"`
}

type CancelSeriesRequest struct {
	ConfirmFallback bool `json:"confirm_fallback"`
}

// ======================================================
// HELPERS
// ======================================================

func accountAndUser(c *gin.Context) (uint, uint) {
	return c.MustGet(middleware.ContextAccountID).(uint),
		c.MustGet(middleware.ContextUserID).(uint)
}

func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	accountID, userID := accountAndUser(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.ucs.Create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		AccountID:  accountID,
		UserID:     userID,
		CustomerID: req.CustomerID,
		HelperID:   req.HelperID,
		Date: dates.DateParts{
			Year:  req.Year,
			Month: req.Month,
			Day:   req.Day,
		},
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		DurationMin:      req.DurationMin,
		Price:            req.Price,
		Notes:            req.Notes,
		IsRecurring:      req.IsRecurring,
		RecurrenceRule:   req.RecurrenceRule,
		AlreadyCompleted: req.AlreadyCompleted,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	accountID, _ := accountAndUser(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Customer").
		Preload("Helper").
		Where("id = ? AND account_id = ?", id, accountID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	accountID, userID := accountAndUser(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.ucs.Update.Execute(c.Request.Context(), usecase.UpdateAppointmentInput{
		AccountID:        accountID,
		UserID:           userID,
		AppointmentID:    id,
		HelperID:         req.HelperID,
		RemoveHelper:     req.RemoveHelper,
		Price:            req.Price,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		DurationMin:      req.DurationMin,
		Notes:            req.Notes,
		HelperFee:        req.HelperFee,
		FeeOverridden:    req.FeeOverridden,
		ClearFeeOverride: req.ClearFeeOverride,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	accountID, userID := accountAndUser(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := h.ucs.Delete.Execute(c.Request.Context(), accountID, userID, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// LISTAGENS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	accountID, _ := accountAndUser(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data (YYYY-MM-DD).")
		return
	}

	aps, err := h.ucs.ListByDate.Execute(c.Request.Context(), accountID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	accountID, _ := accountAndUser(c)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "Informe year e month válidos.")
		return
	}

	aps, err := h.ucs.ListByMonth.Execute(c.Request.Context(), accountID, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListByCustomer(c *gin.Context) {
	accountID, _ := accountAndUser(c)

	customerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	aps, err := h.ucs.ListByCustomer.Execute(c.Request.Context(), accountID, uint(customerID))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// TRANSIÇÕES RÁPIDAS
// ======================================================

func (h *AppointmentHandler) Start(c *gin.Context) {
	accountID, userID := accountAndUser(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.ucs.Start.Execute(c.Request.Context(), accountID, userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Finish(c *gin.Context) {
	accountID, userID := accountAndUser(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.ucs.Finish.Execute(c.Request.Context(), accountID, userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// SELETOR MANUAL DE STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	accountID, userID := accountAndUser(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	target := domain.Status(req.Status)
	if !domain.ValidStatus(target) {
		httperr.BadRequest(c, "invalid_status", "Status desconhecido.")
		return
	}

	result, err := h.ucs.ChangeStatus.Execute(c.Request.Context(), usecase.ChangeStatusInput{
		AccountID:              accountID,
		UserID:                 userID,
		AppointmentID:          id,
		Target:                 target,
		SendInvoice:            req.SendInvoice,
		CancelSingleOccurrence: req.CancelSingleOccurrence,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"appointment": result.Appointment}
	if result.InvoiceURL != "" {
		resp["invoice_url"] = result.InvoiceURL
	}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}

	c.JSON(200, resp)
}

// ======================================================
// CANCELAMENTO EM CASCATA
// ======================================================

func (h *AppointmentHandler) CancelSeries(c *gin.Context) {
	accountID, userID := accountAndUser(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req CancelSeriesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
			return
		}
	}

	result, err := h.ucs.CancelSeries.Execute(c.Request.Context(), usecase.CancelSeriesInput{
		AccountID:       accountID,
		UserID:          userID,
		AppointmentID:   id,
		ConfirmFallback: req.ConfirmFallback,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, httpresp.CascadeResponse{
		Cancelled: result.Cancelled,
		FailedIDs: result.FailedIDs,
		Partial:   result.Partial(),
	})
}
