package eligibilityservice

import (
	"log/slog"

	httpadapter "quorum/contexts/election-core/eligibility-service/adapters/http"
	"quorum/contexts/election-core/eligibility-service/adapters/memory"
	"quorum/contexts/election-core/eligibility-service/application/queries"
	"quorum/contexts/election-core/eligibility-service/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	Eligibility queries.EligibilityUseCase
	Store       *memory.Store
}

type Dependencies struct {
	Elections ports.ElectionRepository
	Voters    ports.VoterDirectory
	Ledger    ports.SubmissionLedger
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	useCase := queries.EligibilityUseCase{
		Elections: deps.Elections,
		Voters:    deps.Voters,
		Ledger:    deps.Ledger,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Eligibility: useCase,
			Logger:      deps.Logger,
		},
		Eligibility: useCase,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Elections: store,
		Voters:    store,
		Ledger:    store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
