package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/service"
)

type AgentHandler struct {
	agentService service.AgentService
}

func NewAgentHandler(as service.AgentService) *AgentHandler {
	return &AgentHandler{agentService: as}
}

// CreateAgentRequest est l'entité Agent moins id/createdAt.
type CreateAgentRequest struct {
	FirstName          string `json:"firstName" binding:"required"`
	LastName           string `json:"lastName" binding:"required"`
	Matricule          string `json:"matricule" binding:"required"`
	Rank               string `json:"rank" binding:"required"`
	Phone              string `json:"phone"`
	PhotoURL           string `json:"photoUrl"`
	YearlyTrainingGoal int    `json:"yearlyTrainingGoal"`
}

func (h *AgentHandler) Create(c *gin.Context) {
	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	agent := entity.Agent{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Matricule:          req.Matricule,
		Rank:               req.Rank,
		Phone:              req.Phone,
		PhotoURL:           req.PhotoURL,
		YearlyTrainingGoal: req.YearlyTrainingGoal,
	}

	if err := h.agentService.CreateAgent(c.Request.Context(), &agent); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, agent)
}

func (h *AgentHandler) List(c *gin.Context) {
	search := c.Query("search")
	rank := c.Query("rank")
	// "all" est la valeur neutre du filtre côté client
	if rank == "all" {
		rank = ""
	}

	agents, err := h.agentService.ListAgents(c.Request.Context(), search, rank)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, agents)
}

func (h *AgentHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid agent id", Field: "id"})
		return
	}

	detail, err := h.agentService.GetAgent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "agent not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}
