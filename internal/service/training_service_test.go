package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caserne/backend/internal/domain/apperr"
	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/repository/memory"
)

func newTrainingFixture() (TrainingService, *memory.Store) {
	store := memory.NewStore()
	return NewTrainingService(store.Trainings()), store
}

func strPtr(s string) *string { return &s }

func TestCreateTraining(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults category to autre", func(t *testing.T) {
		s, _ := newTrainingFixture()
		training := &entity.Training{Code: "FOR-1", Title: "Secourisme"}
		require.NoError(t, s.CreateTraining(ctx, training))
		assert.Equal(t, entity.CategoryAutre, training.Category)
		assert.NotZero(t, training.ID)
	})

	t.Run("code and title are required", func(t *testing.T) {
		s, _ := newTrainingFixture()

		err := s.CreateTraining(ctx, &entity.Training{Title: "Secourisme"})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "code", ve.Field)

		err = s.CreateTraining(ctx, &entity.Training{Code: "FOR-1"})
		ve, ok = apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "title", ve.Field)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		s, _ := newTrainingFixture()
		err := s.CreateTraining(ctx, &entity.Training{Code: "FOR-1", Title: "Secourisme", Category: "cuisine"})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "category", ve.Field)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		s, _ := newTrainingFixture()
		err := s.CreateTraining(ctx, &entity.Training{Code: "FOR-1", Title: "Secourisme", Date: "15/06/2026"})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "date", ve.Field)
	})
}

func TestUpdateTraining(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (TrainingService, *memory.Store, *entity.Training) {
		t.Helper()
		s, store := newTrainingFixture()
		training := &entity.Training{
			Code: "FOR-1", Title: "Secourisme", Description: "PSC1",
			Category: entity.CategorySecourisme, Date: "2026-06-15",
		}
		require.NoError(t, s.CreateTraining(ctx, training))
		return s, store, training
	}

	t.Run("unknown id yields NotFoundError", func(t *testing.T) {
		s, _ := newTrainingFixture()
		_, err := s.UpdateTraining(ctx, 999, TrainingPatch{Title: strPtr("X")})
		_, ok := apperr.AsNotFound(err)
		assert.True(t, ok, "expected NotFoundError, got %v", err)
	})

	t.Run("only non-nil fields are applied", func(t *testing.T) {
		s, store, training := seed(t)
		updated, err := s.UpdateTraining(ctx, training.ID, TrainingPatch{Title: strPtr("Secourisme avancé")})
		require.NoError(t, err)
		assert.Equal(t, "Secourisme avancé", updated.Title)
		assert.Equal(t, "PSC1", updated.Description)
		assert.Equal(t, entity.CategorySecourisme, updated.Category)
		assert.Equal(t, "2026-06-15", updated.Date)

		persisted, err := store.Trainings().GetByID(ctx, training.ID)
		require.NoError(t, err)
		require.NotNil(t, persisted)
		assert.Equal(t, "Secourisme avancé", persisted.Title)
	})

	t.Run("documents list can be replaced", func(t *testing.T) {
		s, _, training := seed(t)
		docs := []string{"consignes.pdf", "fiche.pdf"}
		updated, err := s.UpdateTraining(ctx, training.ID, TrainingPatch{Documents: &docs})
		require.NoError(t, err)
		assert.Equal(t, docs, updated.Documents)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		s, _, training := seed(t)
		_, err := s.UpdateTraining(ctx, training.ID, TrainingPatch{Title: strPtr("")})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "title", ve.Field)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		s, _, training := seed(t)
		_, err := s.UpdateTraining(ctx, training.ID, TrainingPatch{Date: strPtr("juin 2026")})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "date", ve.Field)
	})
}
