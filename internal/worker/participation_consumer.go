package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/platform/metrics"
	"github.com/caserne/backend/internal/platform/queue"
)

// ParticipationConsumer consomme les participations enregistrées et
// alimente les compteurs d'activité.
type ParticipationConsumer struct {
	consumer queue.Consumer
}

func NewParticipationConsumer(consumer queue.Consumer) *ParticipationConsumer {
	return &ParticipationConsumer{consumer: consumer}
}

func (c *ParticipationConsumer) Start(ctx context.Context) error {
	slog.Info("starting participation consumer", "queue", queue.ParticipationsQueue)

	handler := func(ctx context.Context, body []byte) error {
		var participation entity.Participation
		if err := json.Unmarshal(body, &participation); err != nil {
			return fmt.Errorf("failed to unmarshal participation: %w", err)
		}

		metrics.ParticipationsRecorded.Inc()
		metrics.TrainingHoursRecorded.Add(participation.Hours())

		slog.Info("participation recorded",
			"participationId", participation.ID,
			"agentId", participation.AgentID,
			"trainingId", participation.TrainingID,
			"hours", participation.Hours(),
			"validationStatus", participation.ValidationStatus,
		)
		return nil
	}

	return c.consumer.Consume(ctx, queue.ParticipationsQueue, handler)
}
