package carrier

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ordesk/backoffice/internal/config"
)

// Module exposes carrier client implementation to fx graph. An empty
// CARRIER_ADDRESS disables tracking and provides a nil client.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.CarrierAddress == "" {
		return nil, nil
	}
	return NewHTTPClient(p.Config.CarrierAddress, p.Logger)
}
