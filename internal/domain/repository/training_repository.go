package repository

import (
	"context"

	"github.com/caserne/backend/internal/domain/entity"
)

type TrainingRepository interface {
	Create(ctx context.Context, training *entity.Training) error
	GetByID(ctx context.Context, id int) (*entity.Training, error)
	GetAll(ctx context.Context) ([]entity.Training, error)
	Update(ctx context.Context, training *entity.Training) error
}
