package repository

import (
	"context"

	"github.com/caserne/backend/internal/domain/entity"
)

// AgentFilter restreint la liste des agents. Champs vides = pas de filtre.
type AgentFilter struct {
	Search string // sous-chaîne insensible à la casse sur nom/prénom/matricule
	Rank   string // correspondance exacte sur le grade
}

type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	GetByID(ctx context.Context, id int) (*entity.Agent, error)
	GetByMatricule(ctx context.Context, matricule string) (*entity.Agent, error)
	GetAll(ctx context.Context, filter AgentFilter) ([]entity.Agent, error)
}
