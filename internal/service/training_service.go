package service

import (
	"context"
	"fmt"
	"time"

	"github.com/caserne/backend/internal/domain/apperr"
	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/domain/repository"
)

type TrainingService interface {
	CreateTraining(ctx context.Context, training *entity.Training) error
	ListTrainings(ctx context.Context) ([]entity.Training, error)
	UpdateTraining(ctx context.Context, id int, patch TrainingPatch) (*entity.Training, error)
}

// TrainingPatch porte une mise à jour partielle : seuls les champs non nil
// sont appliqués. L'identifiant et le code ne sont pas modifiables.
type TrainingPatch struct {
	Title         *string
	Description   *string
	Category      *entity.TrainingCategory
	Documents     *[]string
	Date          *string
	DurationHours *float64
}

type trainingService struct {
	trainings repository.TrainingRepository
}

func NewTrainingService(trainings repository.TrainingRepository) TrainingService {
	return &trainingService{trainings: trainings}
}

func (s *trainingService) CreateTraining(ctx context.Context, training *entity.Training) error {
	if training.Code == "" {
		return apperr.ValidationField("code is required", "code")
	}
	if training.Title == "" {
		return apperr.ValidationField("title is required", "title")
	}
	if training.Category == "" {
		training.Category = entity.CategoryAutre
	}
	if !training.Category.IsValid() {
		return apperr.ValidationField(fmt.Sprintf("unknown category %q", training.Category), "category")
	}
	if training.Date != "" && !isValidDate(training.Date) {
		return apperr.ValidationField("date must be formatted YYYY-MM-DD", "date")
	}
	if training.DurationHours != nil && *training.DurationHours < 0 {
		return apperr.ValidationField("durationHours must be positive", "durationHours")
	}

	if err := s.trainings.Create(ctx, training); err != nil {
		return fmt.Errorf("failed to create training: %w", err)
	}
	return nil
}

func (s *trainingService) ListTrainings(ctx context.Context) ([]entity.Training, error) {
	trainings, err := s.trainings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}
	return trainings, nil
}

func (s *trainingService) UpdateTraining(ctx context.Context, id int, patch TrainingPatch) (*entity.Training, error) {
	training, err := s.trainings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load training %d: %w", id, err)
	}
	if training == nil {
		return nil, apperr.NotFound(fmt.Sprintf("training %d not found", id))
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apperr.ValidationField("title cannot be empty", "title")
		}
		training.Title = *patch.Title
	}
	if patch.Description != nil {
		training.Description = *patch.Description
	}
	if patch.Category != nil {
		if !patch.Category.IsValid() {
			return nil, apperr.ValidationField(fmt.Sprintf("unknown category %q", *patch.Category), "category")
		}
		training.Category = *patch.Category
	}
	if patch.Documents != nil {
		training.Documents = *patch.Documents
	}
	if patch.Date != nil {
		if *patch.Date != "" && !isValidDate(*patch.Date) {
			return nil, apperr.ValidationField("date must be formatted YYYY-MM-DD", "date")
		}
		training.Date = *patch.Date
	}
	if patch.DurationHours != nil {
		if *patch.DurationHours < 0 {
			return nil, apperr.ValidationField("durationHours must be positive", "durationHours")
		}
		training.DurationHours = patch.DurationHours
	}

	if err := s.trainings.Update(ctx, training); err != nil {
		return nil, fmt.Errorf("failed to update training %d: %w", id, err)
	}
	return training, nil
}

func isValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
