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

func newAgentFixture() (AgentService, *memory.Store) {
	store := memory.NewStore()
	return NewAgentService(store.Agents(), store.Participations()), store
}

func hours(h float64) *float64 { return &h }

func TestCreateAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and default yearly goal", func(t *testing.T) {
		s, _ := newAgentFixture()
		agent := &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"}
		require.NoError(t, s.CreateAgent(ctx, agent))
		assert.NotZero(t, agent.ID)
		assert.Equal(t, entity.DefaultYearlyGoal, agent.YearlyTrainingGoal)
		assert.False(t, agent.CreatedAt.IsZero())
	})

	t.Run("created agent is immediately visible in the list", func(t *testing.T) {
		s, _ := newAgentFixture()
		agent := &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"}
		require.NoError(t, s.CreateAgent(ctx, agent))

		agents, err := s.ListAgents(ctx, "", "")
		require.NoError(t, err)
		require.Len(t, agents, 1)
		assert.Equal(t, "SP001", agents[0].Matricule)
	})

	t.Run("duplicate matricule is rejected", func(t *testing.T) {
		s, _ := newAgentFixture()
		first := &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"}
		require.NoError(t, s.CreateAgent(ctx, first))

		dup := &entity.Agent{FirstName: "Paul", LastName: "Martin", Matricule: "SP001", Rank: "Caporal"}
		err := s.CreateAgent(ctx, dup)
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok, "expected ValidationError, got %v", err)
		assert.Equal(t, "matricule", ve.Field)
	})

	t.Run("missing required fields are rejected", func(t *testing.T) {
		s, _ := newAgentFixture()
		err := s.CreateAgent(ctx, &entity.Agent{LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "firstName", ve.Field)
	})

	t.Run("unknown rank is rejected", func(t *testing.T) {
		s, _ := newAgentFixture()
		err := s.CreateAgent(ctx, &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Général"})
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "rank", ve.Field)
	})
}

func TestAggregation(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (AgentService, *memory.Store, *entity.Agent) {
		t.Helper()
		s, store := newAgentFixture()
		agent := &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"}
		require.NoError(t, s.CreateAgent(ctx, agent))
		training := &entity.Training{Code: "FOR-1", Title: "Secourisme", Category: entity.CategorySecourisme}
		require.NoError(t, store.Trainings().Create(ctx, training))
		return s, store, agent
	}

	t.Run("totalHours sums customHours, missing customHours counts zero", func(t *testing.T) {
		s, store, agent := seed(t)
		require.NoError(t, store.Participations().Create(ctx, &entity.Participation{
			AgentID: agent.ID, TrainingID: 1, Status: entity.StatusPresent,
			ValidationStatus: entity.ValidationValidated, CustomHours: hours(4),
		}))
		// Pas de customHours : contribue 0, pas la durée nominale
		require.NoError(t, store.Participations().Create(ctx, &entity.Participation{
			AgentID: agent.ID, TrainingID: 1, Status: entity.StatusPresent,
			ValidationStatus: entity.ValidationValidated,
		}))
		// Absent : compte quand même, politique explicite
		require.NoError(t, store.Participations().Create(ctx, &entity.Participation{
			AgentID: agent.ID, TrainingID: 1, Status: entity.StatusAbsent,
			ValidationStatus: entity.ValidationFailed, CustomHours: hours(2),
		}))

		agents, err := s.ListAgents(ctx, "", "")
		require.NoError(t, err)
		require.Len(t, agents, 1)
		assert.Equal(t, 6.0, agents[0].TotalHours)
		assert.Equal(t, 3, agents[0].TrainingCount)
		assert.InDelta(t, 6.0/35.0*100, agents[0].ProgressPercentage, 0.001)
	})

	t.Run("progress uses the per-agent goal", func(t *testing.T) {
		s, store, agent := seed(t)
		require.NoError(t, store.Participations().Create(ctx, &entity.Participation{
			AgentID: agent.ID, TrainingID: 1, CustomHours: hours(4),
			Status: entity.StatusPresent, ValidationStatus: entity.ValidationValidated,
		}))

		agents, err := s.ListAgents(ctx, "", "")
		require.NoError(t, err)
		require.Len(t, agents, 1)
		assert.InDelta(t, 11.43, agents[0].ProgressPercentage, 0.01)
	})

	t.Run("progress is clamped at 100", func(t *testing.T) {
		s, store, agent := seed(t)
		require.NoError(t, store.Participations().Create(ctx, &entity.Participation{
			AgentID: agent.ID, TrainingID: 1, CustomHours: hours(50),
			Status: entity.StatusPresent, ValidationStatus: entity.ValidationValidated,
		}))

		agents, err := s.ListAgents(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, 100.0, agents[0].ProgressPercentage)
	})

	t.Run("zero-goal rows fall back to the legacy 40h denominator", func(t *testing.T) {
		svc, st := newAgentFixture()
		// Ligne antérieure à la migration : objectif absent en base
		legacy := &entity.Agent{FirstName: "Old", LastName: "Timer", Matricule: "SP000", Rank: "Sapeur"}
		require.NoError(t, st.Agents().Create(ctx, legacy))
		require.NoError(t, st.Participations().Create(ctx, &entity.Participation{
			AgentID: legacy.ID, TrainingID: 1, CustomHours: hours(10),
			Status: entity.StatusPresent, ValidationStatus: entity.ValidationValidated,
		}))

		agents, err := svc.ListAgents(ctx, "", "")
		require.NoError(t, err)
		require.Len(t, agents, 1)
		assert.InDelta(t, 25.0, agents[0].ProgressPercentage, 0.001)
	})
}

func TestListAgentsOrdering(t *testing.T) {
	ctx := context.Background()
	s, _ := newAgentFixture()

	for _, a := range []entity.Agent{
		{FirstName: "Zoé", LastName: "Zabo", Matricule: "SP010", Rank: "Sapeur"},
		{FirstName: "Anne", LastName: "abel", Matricule: "SP011", Rank: "Sapeur"},
		{FirstName: "Émile", LastName: "Èvrard", Matricule: "SP012", Rank: "Sapeur"},
		{FirstName: "Bruno", LastName: "Abel", Matricule: "SP013", Rank: "Sapeur"},
	} {
		agent := a
		require.NoError(t, s.CreateAgent(ctx, &agent))
	}

	agents, err := s.ListAgents(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, agents, 4)

	// Collation française insensible à la casse, prénom en départage
	assert.Equal(t, "abel", agents[0].LastName)
	assert.Equal(t, "Anne", agents[0].FirstName)
	assert.Equal(t, "Abel", agents[1].LastName)
	assert.Equal(t, "Bruno", agents[1].FirstName)
	assert.Equal(t, "Èvrard", agents[2].LastName)
	assert.Equal(t, "Zabo", agents[3].LastName)
}

func TestListAgentsFilters(t *testing.T) {
	ctx := context.Background()
	s, _ := newAgentFixture()

	for _, a := range []entity.Agent{
		{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"},
		{FirstName: "Paul", LastName: "Martin", Matricule: "SP002", Rank: "Caporal"},
	} {
		agent := a
		require.NoError(t, s.CreateAgent(ctx, &agent))
	}

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		agents, err := s.ListAgents(ctx, "dupont", "")
		require.NoError(t, err)
		require.Len(t, agents, 1)
		assert.Equal(t, "Dupont", agents[0].LastName)
	})

	t.Run("search matches matricule", func(t *testing.T) {
		agents, err := s.ListAgents(ctx, "sp002", "")
		require.NoError(t, err)
		require.Len(t, agents, 1)
		assert.Equal(t, "Martin", agents[0].LastName)
	})

	t.Run("rank filter is exact", func(t *testing.T) {
		agents, err := s.ListAgents(ctx, "", "Caporal")
		require.NoError(t, err)
		require.Len(t, agents, 1)
		assert.Equal(t, "Martin", agents[0].LastName)
	})

	t.Run("no filter returns everyone", func(t *testing.T) {
		agents, err := s.ListAgents(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, agents, 2)
	})
}

func TestGetAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id yields nil, not an error", func(t *testing.T) {
		s, _ := newAgentFixture()
		detail, err := s.GetAgent(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, detail)
	})

	t.Run("participations are joined with their training", func(t *testing.T) {
		s, store := newAgentFixture()
		agent := &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"}
		require.NoError(t, s.CreateAgent(ctx, agent))
		training := &entity.Training{Code: "FOR-1", Title: "Secourisme", Category: entity.CategorySecourisme}
		require.NoError(t, store.Trainings().Create(ctx, training))
		require.NoError(t, store.Participations().Create(ctx, &entity.Participation{
			AgentID: agent.ID, TrainingID: training.ID, CustomHours: hours(4),
			Status: entity.StatusPresent, ValidationStatus: entity.ValidationValidated,
		}))

		detail, err := s.GetAgent(ctx, agent.ID)
		require.NoError(t, err)
		require.NotNil(t, detail)
		require.Len(t, detail.Participations, 1)
		assert.Equal(t, "FOR-1", detail.Participations[0].Training.Code)
	})

	t.Run("agent without history has an empty participation list", func(t *testing.T) {
		s, _ := newAgentFixture()
		agent := &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"}
		require.NoError(t, s.CreateAgent(ctx, agent))

		detail, err := s.GetAgent(ctx, agent.ID)
		require.NoError(t, err)
		require.NotNil(t, detail)
		assert.NotNil(t, detail.Participations)
		assert.Empty(t, detail.Participations)
	})
}
