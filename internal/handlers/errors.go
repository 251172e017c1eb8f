package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/dates"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
)

// mensagens exibidas direto na UI
var businessMessages = map[string]string{
	"appointment_not_found":         "Agendamento não encontrado.",
	"customer_not_found":            "Cliente não encontrado.",
	"helper_not_found":              "Diarista não encontrada.",
	"appointment_cancelled":         "Agendamento cancelado não pode ser editado.",
	"invalid_status":                "Status desconhecido.",
	"invalid_transition":            "Transição de status não permitida.",
	"invalid_recurrence_rule":       "Regra de recorrência inválida.",
	"rule_without_recurrence":       "Regra informada sem marcar o agendamento como recorrente.",
	"series_cascade_required":       "Este agendamento faz parte de uma série. Confirme o cancelamento em cascata ou escolha cancelar só esta ocorrência.",
	"series_fallback_not_confirmed": "O cancelamento em lote não está disponível. Confirme o cancelamento individual das ocorrências.",
	"series_not_grouped":            "A série não possui agrupamento explícito.",
}

var businessStatus = map[string]int{
	"appointment_not_found": 404,
	"customer_not_found":    404,
	"helper_not_found":      404,

	"appointment_cancelled":         409,
	"invalid_status":                409,
	"invalid_transition":            409,
	"series_cascade_required":       409,
	"series_fallback_not_confirmed": 409,
}

// writeError traduz erros de domínio/usecase para a resposta HTTP.
// Erros de validação de campo viram 400 com o nome do campo; erros de
// negócio usam a tabela acima; o resto é 500 genérico.
func writeError(c *gin.Context, err error) {
	var verr *dates.ValidationError
	if errors.As(err, &verr) {
		c.JSON(400, gin.H{
			"error_code": "invalid_" + verr.Field,
			"field":      verr.Field,
			"message":    verr.Message,
		})
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		status := businessStatus[code]
		if status == 0 {
			status = 400
		}
		msg := businessMessages[code]
		if msg == "" {
			msg = "Operação não permitida."
		}
		httperr.Write(c, status, code, msg)
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}
