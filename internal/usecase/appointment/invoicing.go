package appointment

import "context"

// ======================================================
// Colaborador de cobrança
// ======================================================

type InvoiceRequest struct {
	AppointmentID uint
	CustomerName  string
	Description   string
	Amount        float64
}

// Invoicer abstrai o provedor de pagamento (Mercado Pago em produção).
// Issue devolve o link de pagamento exibido para copiar/enviar ao
// cliente.
type Invoicer interface {
	Issue(ctx context.Context, req InvoiceRequest) (url string, providerID string, err error)
}

// InvoiceURLCache evita reemissão quando o usuário repete o
// "copiar link" de um agendamento já faturado.
type InvoiceURLCache interface {
	Get(ctx context.Context, appointmentID uint) (string, error)
	Set(ctx context.Context, appointmentID uint, url string) error
}
