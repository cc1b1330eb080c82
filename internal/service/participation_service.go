package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caserne/backend/internal/domain/apperr"
	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/domain/repository"
	"github.com/caserne/backend/internal/platform/queue"
)

type ParticipationService interface {
	CreateParticipation(ctx context.Context, participation *entity.Participation) error
	// CreateBatch enregistre une même session pour plusieurs agents.
	// Chaque élément est indépendant : le lot n'est pas atomique et le
	// résultat expose les échecs partiels.
	CreateBatch(ctx context.Context, input BatchInput) []BatchResult
	ListParticipations(ctx context.Context) ([]entity.Participation, error)
}

// BatchInput décrit une session de formation à enregistrer pour N agents.
type BatchInput struct {
	AgentIDs         []int
	TrainingID       int
	Status           entity.ParticipationStatus
	ValidationStatus entity.ValidationStatus
	CustomHours      *float64
	CompletionDate   string
	Supervisor       string
}

// BatchResult porte le résultat par agent : la participation créée ou l'erreur.
type BatchResult struct {
	AgentID       int                   `json:"agentId"`
	Participation *entity.Participation `json:"participation,omitempty"`
	Error         string                `json:"error,omitempty"`
}

type participationService struct {
	participations repository.ParticipationRepository
	agents         repository.AgentRepository
	trainings      repository.TrainingRepository
	publisher      queue.Publisher
}

func NewParticipationService(
	participations repository.ParticipationRepository,
	agents repository.AgentRepository,
	trainings repository.TrainingRepository,
	publisher queue.Publisher,
) ParticipationService {
	return &participationService{
		participations: participations,
		agents:         agents,
		trainings:      trainings,
		publisher:      publisher,
	}
}

func (s *participationService) CreateParticipation(ctx context.Context, participation *entity.Participation) error {
	if participation.Status == "" {
		participation.Status = entity.StatusPresent
	}
	if !participation.Status.IsValid() {
		return apperr.ValidationField(fmt.Sprintf("unknown status %q", participation.Status), "status")
	}
	if participation.ValidationStatus == "" {
		participation.ValidationStatus = entity.ValidationValidated
	}
	if !participation.ValidationStatus.IsValid() {
		return apperr.ValidationField(fmt.Sprintf("unknown validation status %q", participation.ValidationStatus), "validationStatus")
	}
	if participation.CustomHours != nil && *participation.CustomHours < 0 {
		return apperr.ValidationField("customHours must be positive", "customHours")
	}
	if participation.CompletionDate != "" && !isValidDate(participation.CompletionDate) {
		return apperr.ValidationField("completionDate must be formatted YYYY-MM-DD", "completionDate")
	}

	// Le magasin est l'autorité d'intégrité référentielle : une référence
	// pendante est rejetée avant toute écriture.
	agent, err := s.agents.GetByID(ctx, participation.AgentID)
	if err != nil {
		return fmt.Errorf("failed to resolve agent %d: %w", participation.AgentID, err)
	}
	if agent == nil {
		return apperr.ValidationField(fmt.Sprintf("agent %d does not exist", participation.AgentID), "agentId")
	}
	training, err := s.trainings.GetByID(ctx, participation.TrainingID)
	if err != nil {
		return fmt.Errorf("failed to resolve training %d: %w", participation.TrainingID, err)
	}
	if training == nil {
		return apperr.ValidationField(fmt.Sprintf("training %d does not exist", participation.TrainingID), "trainingId")
	}

	if err := s.participations.Create(ctx, participation); err != nil {
		return fmt.Errorf("failed to create participation: %w", err)
	}

	// Publication asynchrone : l'enregistrement est acquis, l'événement ne
	// doit pas être annulé par la fin de la requête HTTP.
	if s.publisher != nil {
		recorded := *participation
		go func() {
			if err := s.publisher.Publish(context.Background(), queue.ParticipationsQueue, recorded); err != nil {
				slog.Error("failed to publish participation", "participationId", recorded.ID, "error", err)
			}
		}()
	}

	return nil
}

func (s *participationService) CreateBatch(ctx context.Context, input BatchInput) []BatchResult {
	results := make([]BatchResult, 0, len(input.AgentIDs))
	for _, agentID := range input.AgentIDs {
		participation := &entity.Participation{
			AgentID:          agentID,
			TrainingID:       input.TrainingID,
			Status:           input.Status,
			ValidationStatus: input.ValidationStatus,
			CustomHours:      input.CustomHours,
			CompletionDate:   input.CompletionDate,
			Supervisor:       input.Supervisor,
		}
		if err := s.CreateParticipation(ctx, participation); err != nil {
			results = append(results, BatchResult{AgentID: agentID, Error: err.Error()})
			continue
		}
		results = append(results, BatchResult{AgentID: agentID, Participation: participation})
	}
	return results
}

func (s *participationService) ListParticipations(ctx context.Context) ([]entity.Participation, error) {
	participations, err := s.participations.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return participations, nil
}
