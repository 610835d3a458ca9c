package registryservice

import (
	"log/slog"

	httpadapter "quorum/contexts/voter-access/registry-service/adapters/http"
	"quorum/contexts/voter-access/registry-service/adapters/memory"
	"quorum/contexts/voter-access/registry-service/adapters/session"
	"quorum/contexts/voter-access/registry-service/application"
	"quorum/contexts/voter-access/registry-service/domain/entities"
	"quorum/contexts/voter-access/registry-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Voters       ports.VoterRepository
	Sessions     ports.TokenSigner
	Clock        ports.Clock
	SharedSecret string
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Voters:       deps.Voters,
		Sessions:     deps.Sessions,
		Clock:        deps.Clock,
		SharedSecret: deps.SharedSecret,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Registry: service,
			Logger:   deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(seed []entities.Voter, sharedSecret string, sessionSecret string, logger *slog.Logger) (Module, error) {
	store := memory.NewStore(seed)
	signer, err := session.NewSigner(sessionSecret)
	if err != nil {
		return Module{}, err
	}
	module := NewModule(Dependencies{
		Voters:       store,
		Sessions:     signer,
		Clock:        store,
		SharedSecret: sharedSecret,
		Logger:       logger,
	})
	module.Store = store
	return module, nil
}
