package appointment

import (
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/billing"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

// EditSession acompanha uma edição em andamento de agendamento.
// FeeOverridden é o estado "pregado" do repasse: depois que o usuário
// edita o helper_fee na mão, mudanças de preço ou de diarista param de
// recalcular o valor até o override ser limpo. É estado da sessão de
// edição, não coluna persistida.
type EditSession struct {
	Appointment   *models.Appointment
	Helper        *models.Helper
	FeeOverridden bool
}

func NewEditSession(ap *models.Appointment, helper *models.Helper) *EditSession {
	return &EditSession{
		Appointment: ap,
		Helper:      helper,
	}
}

// SetPrice atualiza o preço e re-deriva o repasse, a menos que o
// override manual esteja ativo.
func (s *EditSession) SetPrice(price float64) {
	s.Appointment.Price = &price
	s.rederive()
}

// SetHelper troca a diarista atribuída; repasse acompanha a nova
// política salvo override.
func (s *EditSession) SetHelper(helper *models.Helper) {
	s.Helper = helper
	if helper == nil {
		s.Appointment.HelperID = nil
	} else {
		s.Appointment.HelperID = &helper.ID
	}
	s.rederive()
}

// OverrideFee fixa o repasse manualmente e liga o estado pregado.
func (s *EditSession) OverrideFee(fee float64) {
	s.Appointment.HelperFee = &fee
	s.FeeOverridden = true
}

// ClearOverride desliga o estado pregado e volta à derivação automática.
func (s *EditSession) ClearOverride() {
	s.FeeOverridden = false
	s.rederive()
}

func (s *EditSession) rederive() {
	if s.FeeOverridden {
		return
	}

	if s.Helper == nil || s.Appointment.Price == nil {
		s.Appointment.HelperFee = nil
		return
	}

	fee, ok := billing.ResolveHelperFee(
		*s.Appointment.Price,
		billing.PayoutMode(s.Helper.PayoutMode),
		s.Helper.PayoutValue,
	)
	if !ok {
		s.Appointment.HelperFee = nil
		return
	}
	s.Appointment.HelperFee = &fee
}
