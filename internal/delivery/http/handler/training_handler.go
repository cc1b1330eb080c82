package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/service"
)

type TrainingHandler struct {
	trainingService service.TrainingService
	storageService  service.StorageService
}

func NewTrainingHandler(ts service.TrainingService, ss service.StorageService) *TrainingHandler {
	return &TrainingHandler{
		trainingService: ts,
		storageService:  ss,
	}
}

// CreateTrainingRequest est l'entité Training moins id/createdAt.
type CreateTrainingRequest struct {
	Code          string                  `json:"code" binding:"required"`
	Title         string                  `json:"title" binding:"required"`
	Description   string                  `json:"description"`
	Category      entity.TrainingCategory `json:"category"`
	Documents     []string                `json:"documents"`
	Date          string                  `json:"date"`
	DurationHours *float64                `json:"durationHours"`
}

func (h *TrainingHandler) Create(c *gin.Context) {
	var req CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	training := entity.Training{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Documents:     req.Documents,
		Date:          req.Date,
		DurationHours: req.DurationHours,
	}

	if err := h.trainingService.CreateTraining(c.Request.Context(), &training); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, training)
}

func (h *TrainingHandler) List(c *gin.Context) {
	trainings, err := h.trainingService.ListTrainings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if trainings == nil {
		trainings = []entity.Training{}
	}

	c.JSON(http.StatusOK, trainings)
}

// UpdateTrainingRequest porte une mise à jour partielle : seuls les champs
// présents dans le JSON sont appliqués.
type UpdateTrainingRequest struct {
	Title         *string                  `json:"title"`
	Description   *string                  `json:"description"`
	Category      *entity.TrainingCategory `json:"category"`
	Documents     *[]string                `json:"documents"`
	Date          *string                  `json:"date"`
	DurationHours *float64                 `json:"durationHours"`
}

func (h *TrainingHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid training id", Field: "id"})
		return
	}

	var req UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	training, err := h.trainingService.UpdateTraining(c.Request.Context(), id, service.TrainingPatch{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Documents:     req.Documents,
		Date:          req.Date,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, training)
}

// GetUploadURL génère une URL d'upload présignée pour un document de formation.
func (h *TrainingHandler) GetUploadURL(c *gin.Context) {
	fileName := c.Query("file_name")
	if fileName == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "file_name query param is required", Field: "file_name"})
		return
	}

	if h.storageService == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "document storage unavailable"})
		return
	}

	url, err := h.storageService.GenerateUploadURL(c.Request.Context(), fileName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"uploadUrl": url})
}
