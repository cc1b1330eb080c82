package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/domain/repository"
)

func TestStoreIDsAndCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"}
	second := &entity.Agent{FirstName: "Paul", LastName: "Martin", Matricule: "SP002", Rank: "Caporal"}
	require.NoError(t, store.Agents().Create(ctx, first))
	require.NoError(t, store.Agents().Create(ctx, second))
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	// Les lectures retournent des copies : muter le résultat ne touche pas le magasin
	got, err := store.Agents().GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	got.LastName = "Modifié"

	again, err := store.Agents().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dupont", again.LastName)
}

func TestStoreMatriculeLookup(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	agent := &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"}
	require.NoError(t, store.Agents().Create(ctx, agent))

	found, err := store.Agents().GetByMatricule(ctx, "SP001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, agent.ID, found.ID)

	missing, err := store.Agents().GetByMatricule(ctx, "SP999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreAgentFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, a := range []entity.Agent{
		{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"},
		{FirstName: "Paul", LastName: "Martin", Matricule: "SP002", Rank: "Caporal"},
	} {
		agent := a
		require.NoError(t, store.Agents().Create(ctx, &agent))
	}

	byName, err := store.Agents().GetAll(ctx, repository.AgentFilter{Search: "DUPONT"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Dupont", byName[0].LastName)

	byMatricule, err := store.Agents().GetAll(ctx, repository.AgentFilter{Search: "sp002"})
	require.NoError(t, err)
	require.Len(t, byMatricule, 1)
	assert.Equal(t, "Martin", byMatricule[0].LastName)

	byRank, err := store.Agents().GetAll(ctx, repository.AgentFilter{Rank: "Caporal"})
	require.NoError(t, err)
	require.Len(t, byRank, 1)
	assert.Equal(t, "Martin", byRank[0].LastName)
}

func TestStoreJoin(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	agent := &entity.Agent{FirstName: "Jean", LastName: "Dupont", Matricule: "SP001", Rank: "Sapeur"}
	require.NoError(t, store.Agents().Create(ctx, agent))
	training := &entity.Training{Code: "FOR-1", Title: "Secourisme", Category: entity.CategorySecourisme}
	require.NoError(t, store.Trainings().Create(ctx, training))
	require.NoError(t, store.Participations().Create(ctx, &entity.Participation{
		AgentID: agent.ID, TrainingID: training.ID,
		Status: entity.StatusPresent, ValidationStatus: entity.ValidationValidated,
	}))

	joined, err := store.Participations().GetByAgentWithTraining(ctx, agent.ID)
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, "FOR-1", joined[0].Training.Code)
	assert.Equal(t, "Secourisme", joined[0].Training.Title)
}

func TestStoreConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Participations().Create(ctx, &entity.Participation{
				AgentID: 1, TrainingID: 1,
				Status: entity.StatusPresent, ValidationStatus: entity.ValidationValidated,
			})
		}()
	}
	wg.Wait()

	all, err := store.Participations().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)

	seen := make(map[int]bool)
	for _, p := range all {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}
