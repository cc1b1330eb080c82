package repository

import (
	"context"

	"github.com/caserne/backend/internal/domain/entity"
)

type ParticipationRepository interface {
	Create(ctx context.Context, participation *entity.Participation) error
	GetByAgent(ctx context.Context, agentID int) ([]entity.Participation, error)
	// GetByAgentWithTraining joint chaque participation à sa formation.
	GetByAgentWithTraining(ctx context.Context, agentID int) ([]entity.ParticipationWithTraining, error)
	GetAll(ctx context.Context) ([]entity.Participation, error)
}
