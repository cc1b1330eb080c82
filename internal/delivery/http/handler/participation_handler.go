package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/service"
)

type ParticipationHandler struct {
	participationService service.ParticipationService
}

func NewParticipationHandler(ps service.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{participationService: ps}
}

// CreateParticipationRequest est l'entité Participation moins id/createdAt.
type CreateParticipationRequest struct {
	AgentID          int                        `json:"agentId" binding:"required"`
	TrainingID       int                        `json:"trainingId" binding:"required"`
	Status           entity.ParticipationStatus `json:"status"`
	ValidationStatus entity.ValidationStatus    `json:"validationStatus"`
	CustomHours      *float64                   `json:"customHours"`
	CompletionDate   string                     `json:"completionDate"`
	Supervisor       string                     `json:"supervisor"`
}

func (h *ParticipationHandler) Create(c *gin.Context) {
	var req CreateParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	participation := entity.Participation{
		AgentID:          req.AgentID,
		TrainingID:       req.TrainingID,
		Status:           req.Status,
		ValidationStatus: req.ValidationStatus,
		CustomHours:      req.CustomHours,
		CompletionDate:   req.CompletionDate,
		Supervisor:       req.Supervisor,
	}

	if err := h.participationService.CreateParticipation(c.Request.Context(), &participation); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participation)
}

// BatchRequest enregistre une même session de formation pour plusieurs agents.
type BatchRequest struct {
	AgentIDs         []int                      `json:"agentIds" binding:"required,min=1"`
	TrainingID       int                        `json:"trainingId" binding:"required"`
	Status           entity.ParticipationStatus `json:"status"`
	ValidationStatus entity.ValidationStatus    `json:"validationStatus"`
	CustomHours      *float64                   `json:"customHours"`
	CompletionDate   string                     `json:"completionDate"`
	Supervisor       string                     `json:"supervisor"`
}

// CreateBatch n'est pas atomique : chaque agent est traité indépendamment et
// la réponse expose le résultat par agent.
func (h *ParticipationHandler) CreateBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	results := h.participationService.CreateBatch(c.Request.Context(), service.BatchInput{
		AgentIDs:         req.AgentIDs,
		TrainingID:       req.TrainingID,
		Status:           req.Status,
		ValidationStatus: req.ValidationStatus,
		CustomHours:      req.CustomHours,
		CompletionDate:   req.CompletionDate,
		Supervisor:       req.Supervisor,
	})

	succeeded := 0
	for _, r := range results {
		if r.Error == "" {
			succeeded++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}
