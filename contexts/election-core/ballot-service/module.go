package ballotservice

import (
	"log/slog"

	httpadapter "quorum/contexts/election-core/ballot-service/adapters/http"
	"quorum/contexts/election-core/ballot-service/adapters/memory"
	"quorum/contexts/election-core/ballot-service/application/commands"
	"quorum/contexts/election-core/ballot-service/application/workers"
	"quorum/contexts/election-core/ballot-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Submit  commands.SubmitBallotUseCase
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

type Dependencies struct {
	Ballots   ports.BallotRepository
	Catalog   ports.ElectionCatalog
	Gate      ports.EligibilityGate
	Outbox    ports.OutboxWriter
	Source    ports.OutboxSource
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submit := commands.SubmitBallotUseCase{
		Ballots: deps.Ballots,
		Catalog: deps.Catalog,
		Gate:    deps.Gate,
		Outbox:  deps.Outbox,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Submit: submit,
			Logger: deps.Logger,
		},
		Submit: submit,
		Relay: workers.OutboxRelay{
			Outbox:    deps.Source,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule wires the command path against the in-memory store. The
// eligibility gate and publisher stay caller-supplied because both cross the
// service boundary.
func NewInMemoryModule(gate ports.EligibilityGate, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ballots:   store,
		Catalog:   store,
		Gate:      gate,
		Outbox:    store,
		Source:    store,
		Publisher: publisher,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
