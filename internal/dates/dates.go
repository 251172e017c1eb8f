package dates

import (
	"fmt"
	"time"
)

// Formato de transporte de todas as datas do sistema.
const CanonicalLayout = "2006-01-02"

// Canonical formata uma data no padrão YYYY-MM-DD sempre em horário
// local, nunca deslocado para UTC.
func Canonical(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006",
}

// ParseCanonical interpreta uma data canônica no fuso informado.
// Valores com componente de hora embutido são truncados na fronteira
// da data. String vazia resolve para "agora" de propósito: o calendário
// abre no dia corrente quando nada foi selecionado.
func ParseCanonical(value string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if value == "" {
		return time.Now().In(loc)
	}

	if len(value) > 10 && (value[10] == 'T' || value[10] == ' ') {
		if t, err := time.ParseInLocation(CanonicalLayout, value[:10], loc); err == nil {
			return t
		}
	}

	if t, err := time.ParseInLocation(CanonicalLayout, value, loc); err == nil {
		return t
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t
		}
	}

	return time.Now().In(loc)
}

// ValidationError é um erro de campo mostrado inline no formulário,
// nunca aborta o fluxo que o gerou.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// DateParts carrega os campos ano/mês/dia editados separadamente no
// formulário de criação ("escolhe o mês, escolhe o dia").
type DateParts struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Compose valida e monta a data canônica a partir dos campos soltos.
func (p DateParts) Compose() (string, *ValidationError) {
	if p.Month < 1 || p.Month > 12 {
		return "", &ValidationError{Field: "month", Message: "Mês inválido."}
	}
	if p.Day < 1 || p.Day > DaysInMonth(p.Year, p.Month) {
		return "", &ValidationError{Field: "day", Message: "Dia inválido para o mês selecionado."}
	}

	return fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day), nil
}

// DaysInMonth devolve o último dia do mês, ciente de ano bissexto.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
