package repository

import (
	"github.com/deppfellow/card-collection-api/internal/server"
)

// Repositories is a container for all repository instances.
//
// Services receive the whole container so new repositories can be added
// without changing the wiring.
type Repositories struct {
	Card *CardRepository
}

// NewRepositories constructs the repository container from the server
// config. Each call builds a fresh store, so tests get isolated state.
func NewRepositories(s *server.Server) *Repositories {
	opts := []CardOption{WithLogger(s.Logger)}
	if s.Config.Store.Seed {
		opts = append(opts, WithSeedCards(SeedCards()))
	}

	return &Repositories{
		Card: NewCardRepository(opts...),
	}
}
