package billing

import (
	"math"
	"time"
)

// ===============================
// Payout Mode
// ===============================

type PayoutMode string

const (
	PayoutFixed      PayoutMode = "FIXED"
	PayoutPercentage PayoutMode = "PERCENTAGE"
)

func ValidPayoutMode(mode PayoutMode) bool {
	return mode == PayoutFixed || mode == PayoutPercentage
}

// ===============================
// Derivações financeiras
// ===============================

// ElapsedMinutes calcula a diferença em minutos entre dois horários HH:MM
// do mesmo dia. Quando end < start (virada de meia-noite ou erro de
// digitação) o resultado é travado em zero; é anomalia de exibição,
// não motivo de falha.
func ElapsedMinutes(startHM, endHM string) int {
	start, err := time.Parse("15:04", startHM)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", endHM)
	if err != nil {
		return 0
	}

	minutes := int(end.Sub(start).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// ResolveHelperFee deriva o repasse da diarista a partir do preço e da
// política de pagamento. Retorna ok=false quando o preço ainda não foi
// definido (<= 0 ou não finito): agendamento sem preço não é evento de
// cobrança, então nenhum repasse é calculado.
func ResolveHelperFee(price float64, mode PayoutMode, value float64) (float64, bool) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, false
	}

	switch mode {
	case PayoutFixed:
		return roundCurrency(value), true
	case PayoutPercentage:
		return roundCurrency(price * value / 100), true
	}

	return 0, false
}

// arredondamento half-up em centavos
func roundCurrency(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
