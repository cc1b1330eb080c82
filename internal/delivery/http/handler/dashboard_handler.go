package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/service"
)

type DashboardHandler struct {
	agentService         service.AgentService
	trainingService      service.TrainingService
	participationService service.ParticipationService
}

func NewDashboardHandler(as service.AgentService, ts service.TrainingService, ps service.ParticipationService) *DashboardHandler {
	return &DashboardHandler{
		agentService:         as,
		trainingService:      ts,
		participationService: ps,
	}
}

// GetStats retourne les statistiques agrégées de la caserne.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	agents, err := h.agentService.ListAgents(ctx, "", "")
	if err != nil {
		respondError(c, err)
		return
	}

	trainings, err := h.trainingService.ListTrainings(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	participations, err := h.participationService.ListParticipations(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	var totalHours float64
	for _, a := range agents {
		totalHours += a.TotalHours
	}

	// Compteurs par statut de validation
	validationCounts := map[string]int{
		string(entity.ValidationValidated): 0,
		string(entity.ValidationPending):   0,
		string(entity.ValidationFailed):    0,
	}
	// Compteurs par statut de présence
	statusCounts := map[string]int{
		string(entity.StatusPresent): 0,
		string(entity.StatusAbsent):  0,
		string(entity.StatusExcused): 0,
	}
	for _, p := range participations {
		validationCounts[string(p.ValidationStatus)]++
		statusCounts[string(p.Status)]++
	}

	// Répartition du catalogue par catégorie
	categoryCounts := map[string]int{
		string(entity.CategorySecourisme):         0,
		string(entity.CategoryOperationsDiverses): 0,
		string(entity.CategoryIncendie):           0,
		string(entity.CategoryAutre):              0,
	}
	for _, t := range trainings {
		categoryCounts[string(t.Category)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"activeAgents":     len(agents),
		"totalHours":       totalHours,
		"trainings":        len(trainings),
		"participations":   len(participations),
		"validationCounts": validationCounts,
		"statusCounts":     statusCounts,
		"categoryCounts":   categoryCounts,
		"nextManeuverDate": nextManeuverDate(time.Now()).Format("2006-01-02"),
		"supervisors":      entity.Supervisors,
		"generatedAt":      time.Now(),
	})
}

// nextManeuverDate retourne le premier dimanche du mois suivant,
// date traditionnelle de la manœuvre mensuelle.
func nextManeuverDate(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	offset := (7 - int(first.Weekday())) % 7
	return first.AddDate(0, 0, offset)
}
