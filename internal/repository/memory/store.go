// Package memory fournit un magasin en mémoire implémentant les interfaces
// repository. Il sert de repli quand la base est injoignable (mode dégradé)
// et de substrat aux tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/domain/repository"
)

// Store détient les trois collections sous un même verrou.
// Chaque création est atomique ; les lectures retournent des copies.
type Store struct {
	mu sync.RWMutex

	agents         map[int]entity.Agent
	trainings      map[int]entity.Training
	participations map[int]entity.Participation

	nextAgentID         int
	nextTrainingID      int
	nextParticipationID int
}

func NewStore() *Store {
	return &Store{
		agents:              make(map[int]entity.Agent),
		trainings:           make(map[int]entity.Training),
		participations:      make(map[int]entity.Participation),
		nextAgentID:         1,
		nextTrainingID:      1,
		nextParticipationID: 1,
	}
}

// Agents retourne la vue AgentRepository du magasin.
func (s *Store) Agents() repository.AgentRepository { return &agentStore{s} }

// Trainings retourne la vue TrainingRepository du magasin.
func (s *Store) Trainings() repository.TrainingRepository { return &trainingStore{s} }

// Participations retourne la vue ParticipationRepository du magasin.
func (s *Store) Participations() repository.ParticipationRepository { return &participationStore{s} }

type agentStore struct{ *Store }

func (s *agentStore) Create(ctx context.Context, agent *entity.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	agent.ID = s.nextAgentID
	s.nextAgentID++
	agent.CreatedAt = time.Now()
	s.agents[agent.ID] = *agent
	return nil
}

func (s *agentStore) GetByID(ctx context.Context, id int) (*entity.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agents[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *agentStore) GetByMatricule(ctx context.Context, matricule string) (*entity.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.agents {
		if a.Matricule == matricule {
			agent := a
			return &agent, nil
		}
	}
	return nil, nil
}

func (s *agentStore) GetAll(ctx context.Context, filter repository.AgentFilter) ([]entity.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []entity.Agent
	search := strings.ToLower(filter.Search)
	for _, a := range s.agents {
		if filter.Rank != "" && a.Rank != filter.Rank {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(a.FirstName + " " + a.LastName + " " + a.Matricule)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		results = append(results, a)
	}
	return results, nil
}

type trainingStore struct{ *Store }

func (s *trainingStore) Create(ctx context.Context, training *entity.Training) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	training.ID = s.nextTrainingID
	s.nextTrainingID++
	training.CreatedAt = time.Now()
	s.trainings[training.ID] = *training
	return nil
}

func (s *trainingStore) GetByID(ctx context.Context, id int) (*entity.Training, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trainings[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *trainingStore) GetAll(ctx context.Context) ([]entity.Training, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []entity.Training
	for _, t := range s.trainings {
		results = append(results, t)
	}
	return results, nil
}

func (s *trainingStore) Update(ctx context.Context, training *entity.Training) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trainings[training.ID]; !ok {
		return nil
	}
	s.trainings[training.ID] = *training
	return nil
}

type participationStore struct{ *Store }

func (s *participationStore) Create(ctx context.Context, participation *entity.Participation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	participation.ID = s.nextParticipationID
	s.nextParticipationID++
	participation.CreatedAt = time.Now()
	s.participations[participation.ID] = *participation
	return nil
}

func (s *participationStore) GetByAgent(ctx context.Context, agentID int) ([]entity.Participation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []entity.Participation
	for _, p := range s.participations {
		if p.AgentID == agentID {
			results = append(results, p)
		}
	}
	return results, nil
}

func (s *participationStore) GetByAgentWithTraining(ctx context.Context, agentID int) ([]entity.ParticipationWithTraining, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []entity.ParticipationWithTraining
	for _, p := range s.participations {
		if p.AgentID != agentID {
			continue
		}
		results = append(results, entity.ParticipationWithTraining{
			Participation: p,
			Training:      s.trainings[p.TrainingID],
		})
	}
	return results, nil
}

func (s *participationStore) GetAll(ctx context.Context) ([]entity.Participation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []entity.Participation
	for _, p := range s.participations {
		results = append(results, p)
	}
	return results, nil
}
