package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/caserne/backend/internal/domain/apperr"
	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/domain/repository"
)

type AgentService interface {
	CreateAgent(ctx context.Context, agent *entity.Agent) error
	// ListAgents retourne les agents enrichis de leurs statistiques,
	// triés par nom (collation française, insensible à la casse).
	ListAgents(ctx context.Context, search, rank string) ([]entity.AgentWithStats, error)
	// GetAgent retourne (nil, nil) quand l'identifiant ne résout pas.
	GetAgent(ctx context.Context, id int) (*entity.AgentDetail, error)
}

type agentService struct {
	agents         repository.AgentRepository
	participations repository.ParticipationRepository
}

func NewAgentService(agents repository.AgentRepository, participations repository.ParticipationRepository) AgentService {
	return &agentService{
		agents:         agents,
		participations: participations,
	}
}

func (s *agentService) CreateAgent(ctx context.Context, agent *entity.Agent) error {
	if agent.FirstName == "" {
		return apperr.ValidationField("firstName is required", "firstName")
	}
	if agent.LastName == "" {
		return apperr.ValidationField("lastName is required", "lastName")
	}
	if agent.Matricule == "" {
		return apperr.ValidationField("matricule is required", "matricule")
	}
	if !entity.IsValidRank(agent.Rank) {
		return apperr.ValidationField(fmt.Sprintf("unknown rank %q", agent.Rank), "rank")
	}
	if agent.YearlyTrainingGoal < 0 {
		return apperr.ValidationField("yearlyTrainingGoal must be positive", "yearlyTrainingGoal")
	}
	if agent.YearlyTrainingGoal == 0 {
		agent.YearlyTrainingGoal = entity.DefaultYearlyGoal
	}

	existing, err := s.agents.GetByMatricule(ctx, agent.Matricule)
	if err != nil {
		return fmt.Errorf("failed to check matricule: %w", err)
	}
	if existing != nil {
		return apperr.ValidationField(fmt.Sprintf("matricule %s is already in use", agent.Matricule), "matricule")
	}

	if err := s.agents.Create(ctx, agent); err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

func (s *agentService) ListAgents(ctx context.Context, search, rank string) ([]entity.AgentWithStats, error) {
	agents, err := s.agents.GetAll(ctx, repository.AgentFilter{Search: search, Rank: rank})
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	// Les statistiques sont recalculées à chaque lecture, jamais mises en cache.
	results := make([]entity.AgentWithStats, 0, len(agents))
	for _, agent := range agents {
		participations, err := s.participations.GetByAgent(ctx, agent.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load participations for agent %d: %w", agent.ID, err)
		}
		results = append(results, computeStats(agent, participations))
	}

	sortAgents(results)
	return results, nil
}

func (s *agentService) GetAgent(ctx context.Context, id int) (*entity.AgentDetail, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent %d: %w", id, err)
	}
	if agent == nil {
		return nil, nil
	}

	participations, err := s.participations.GetByAgentWithTraining(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load participations for agent %d: %w", id, err)
	}
	if participations == nil {
		participations = []entity.ParticipationWithTraining{}
	}

	return &entity.AgentDetail{Agent: *agent, Participations: participations}, nil
}

// computeStats agrège les participations d'un agent.
// Toutes les participations comptent, quel que soit leur statut de présence
// ou de validation : aucune pénalité numérique n'est appliquée.
func computeStats(agent entity.Agent, participations []entity.Participation) entity.AgentWithStats {
	var totalHours float64
	for _, p := range participations {
		totalHours += p.Hours()
	}

	// L'objectif par agent est la source canonique ; le dénominateur 40h
	// historique ne couvre que les lignes sans objectif.
	goal := agent.YearlyTrainingGoal
	if goal <= 0 {
		goal = entity.LegacyGoalHours
	}

	return entity.AgentWithStats{
		Agent:              agent,
		TotalHours:         totalHours,
		TrainingCount:      len(participations),
		ProgressPercentage: math.Min(100, totalHours/float64(goal)*100),
	}
}

// sortAgents ordonne par nom puis prénom (collation française, insensible à
// la casse), avec l'identifiant en dernier critère pour rester déterministe.
func sortAgents(agents []entity.AgentWithStats) {
	c := collate.New(language.French, collate.IgnoreCase)
	sort.SliceStable(agents, func(i, j int) bool {
		if cmp := c.CompareString(agents[i].LastName, agents[j].LastName); cmp != 0 {
			return cmp < 0
		}
		if cmp := c.CompareString(agents[i].FirstName, agents[j].FirstName); cmp != 0 {
			return cmp < 0
		}
		return agents[i].ID < agents[j].ID
	})
}
