package appointment

import "github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "AGENDADO"
	StatusInProgress Status = "EM_ANDAMENTO"
	StatusCompleted  Status = "CONCLUIDO"
	StatusCancelled  Status = "CANCELADO"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica estado final: este motor nunca reabre um
// agendamento concluído ou cancelado.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Tabela de legalidade
// ===============================

// Transições permitidas. Todos os pontos de entrada (botões rápidos,
// formulário, cascata de série) passam por esta tabela única.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition valida uma mudança de estado. Transição ilegal é erro
// de programação/estado da UI: é reportada, nunca recuperada
// automaticamente.
func CanTransition(from, to Status) error {
	if !ValidStatus(from) || !ValidStatus(to) {
		return httperr.ErrBusiness("invalid_status")
	}

	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

func InitialStatus() Status {
	return StatusScheduled
}
