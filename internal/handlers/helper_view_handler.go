package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BrilhoLimpeza/cleaning-scheduler/internal/domain/appointment"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/middleware"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/timezone"
	usecase "github.com/BrilhoLimpeza/cleaning-scheduler/internal/usecase/appointment"
)

// ======================================================
// VISÃO MOBILE DA DIARISTA
// ======================================================

// HelperViewHandler atende o app da diarista: agenda do dia e os
// botões iniciar/finalizar dos próprios atendimentos. Todo acesso é
// escopado pelo helperId do token.
type HelperViewHandler struct {
	repo   domain.Repository
	start  *usecase.StartAppointment
	finish *usecase.FinishAppointment
}

func NewHelperViewHandler(
	repo domain.Repository,
	start *usecase.StartAppointment,
	finish *usecase.FinishAppointment,
) *HelperViewHandler {
	return &HelperViewHandler{
		repo:   repo,
		start:  start,
		finish: finish,
	}
}

func helperFromContext(c *gin.Context) (uint, bool) {
	val, exists := c.Get(middleware.ContextHelperID)
	if !exists {
		httperr.Forbidden(c, "not_a_helper", "Este login não é de uma diarista.")
		return 0, false
	}
	return val.(uint), true
}

type helperAgendaItem struct {
	ID         uint   `json:"id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Status     string `json:"status"`
	Customer   string `json:"customer"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
	ElapsedMin int    `json:"elapsed_min"`

	// A diarista vê o próprio repasse, nunca o preço do cliente
	HelperFee *float64 `json:"helper_fee"`
}

// ListDay devolve a agenda do dia da diarista logada.
func (h *HelperViewHandler) ListDay(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	helperID, ok := helperFromContext(c)
	if !ok {
		return
	}

	account, err := h.repo.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		httperr.Internal(c, "account_not_found", "Conta não encontrada.")
		return
	}

	date := c.Query("date")
	if date == "" {
		date = timezone.NowIn(account.Timezone).Format("2006-01-02")
	}

	aps, err := h.repo.ListAppointmentsForHelperDate(c.Request.Context(), helperID, date)
	if err != nil {
		httperr.Internal(c, "agenda_list_failed", "Erro ao listar a agenda.")
		return
	}

	now := timezone.NowIn(account.Timezone)

	items := make([]helperAgendaItem, 0, len(aps))
	for i := range aps {
		ap := &aps[i]
		items = append(items, helperAgendaItem{
			ID:         ap.ID,
			Date:       ap.Date,
			StartTime:  ap.StartTime,
			EndTime:    ap.EndTime,
			Status:     ap.Status,
			Customer:   ap.Customer.Name,
			Address:    ap.Customer.Address,
			Notes:      ap.Notes,
			ElapsedMin: domain.ElapsedMinutes(ap, now),
			HelperFee:  ap.HelperFee,
		})
	}

	c.JSON(200, gin.H{
		"date":  date,
		"items": items,
		"total": len(items),
	})
}

// Start inicia um atendimento da própria diarista.
func (h *HelperViewHandler) Start(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	helperID, ok := helperFromContext(c)
	if !ok {
		return
	}

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.ownAppointment(c, helperID, id)
	if err != nil {
		return
	}

	updated, err := h.start.Execute(c.Request.Context(), accountID, userID, ap.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, updated)
}

// Finish conclui um atendimento da própria diarista.
func (h *HelperViewHandler) Finish(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	helperID, ok := helperFromContext(c)
	if !ok {
		return
	}

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.ownAppointment(c, helperID, id)
	if err != nil {
		return
	}

	updated, err := h.finish.Execute(c.Request.Context(), accountID, userID, ap.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, updated)
}

// ownAppointment garante que o agendamento pertence à diarista do
// token antes de qualquer transição. Já escreve a resposta em caso de
// erro.
func (h *HelperViewHandler) ownAppointment(
	c *gin.Context,
	helperID uint,
	id uint,
) (*models.Appointment, error) {

	ap, err := h.repo.GetAppointmentForHelper(c.Request.Context(), helperID, id)
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return nil, err
	}
	return ap, nil
}
