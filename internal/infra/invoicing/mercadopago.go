package invoicing

import (
	"context"
	"errors"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/logs"
	usecase "github.com/BrilhoLimpeza/cleaning-scheduler/internal/usecase/appointment"
)

var (
	ErrMissingToken  = errors.New("mercado pago access token não configurado")
	ErrEmptyCheckout = errors.New("mercado pago não retornou link de pagamento")
)

// MercadoPagoInvoicer emite um link de pagamento (checkout pro) por
// agendamento concluído. Em desenvolvimento, use NewMock para não
// depender de credenciais reais.
type MercadoPagoInvoicer struct {
	client preference.Client
	mock   bool
}

func New(accessToken string) (*MercadoPagoInvoicer, error) {
	if accessToken == "" {
		return nil, ErrMissingToken
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("configurando mercado pago: %w", err)
	}

	return &MercadoPagoInvoicer{client: preference.NewClient(cfg)}, nil
}

func NewMock() *MercadoPagoInvoicer {
	return &MercadoPagoInvoicer{mock: true}
}

func (m *MercadoPagoInvoicer) Issue(
	ctx context.Context,
	req usecase.InvoiceRequest,
) (string, string, error) {

	if m.mock {
		providerID := fmt.Sprintf("mock-%d", req.AppointmentID)
		return fmt.Sprintf("https://pay.mock.local/%s", providerID), providerID, nil
	}

	resp, err := m.client.Create(ctx, preference.Request{
		ExternalReference: fmt.Sprintf("appointment-%d", req.AppointmentID),
		Items: []preference.ItemRequest{
			{
				Title:       req.Description,
				Description: fmt.Sprintf("Limpeza para %s", req.CustomerName),
				Quantity:    1,
				UnitPrice:   req.Amount,
			},
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("criando preferência: %w", err)
	}

	if resp.InitPoint == "" {
		return "", "", ErrEmptyCheckout
	}

	logs.Log.Info("invoice issued",
		zap.Uint("appointmentId", req.AppointmentID),
		zap.String("preferenceId", resp.ID),
	)

	return resp.InitPoint, resp.ID, nil
}

var _ usecase.Invoicer = (*MercadoPagoInvoicer)(nil)
