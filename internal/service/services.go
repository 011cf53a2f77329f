package service

import (
	"github.com/deppfellow/card-collection-api/internal/repository"
	"github.com/deppfellow/card-collection-api/internal/server"
)

// Services groups every service so handlers receive a single dependency.
type Services struct {
	Card *CardService
}

// NewService wires the services over the repositories.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Card: NewCardService(s, repos.Card),
	}, nil
}
