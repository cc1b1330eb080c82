package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caserne/backend/internal/contract"
	"github.com/caserne/backend/internal/delivery/http/middleware"
)

// NewRouter assemble le routeur sur les chemins du contrat : toute évolution
// de chemin passe par le package contract.
func NewRouter(
	agent *AgentHandler,
	training *TrainingHandler,
	participation *ParticipationHandler,
	dashboard *DashboardHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	// Configuration CORS (permissive pour le dev)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Handle(contract.AgentsList.Method, contract.AgentsList.Path, agent.List)
	r.Handle(contract.AgentsGet.Method, contract.AgentsGet.Path, agent.Get)
	r.Handle(contract.AgentsCreate.Method, contract.AgentsCreate.Path, agent.Create)

	r.Handle(contract.TrainingsList.Method, contract.TrainingsList.Path, training.List)
	r.Handle(contract.TrainingsCreate.Method, contract.TrainingsCreate.Path, training.Create)
	r.Handle(contract.TrainingsUpdate.Method, contract.TrainingsUpdate.Path, training.Update)
	r.Handle(contract.TrainingsUploadURL.Method, contract.TrainingsUploadURL.Path, training.GetUploadURL)

	r.Handle(contract.ParticipationsCreate.Method, contract.ParticipationsCreate.Path, participation.Create)
	r.Handle(contract.ParticipationsBatch.Method, contract.ParticipationsBatch.Path, participation.CreateBatch)

	r.Handle(contract.Stats.Method, contract.Stats.Path, dashboard.GetStats)

	// Santé
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
