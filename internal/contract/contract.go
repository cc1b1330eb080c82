// Package contract est la source de vérité du contrat HTTP : méthodes,
// chemins et sémantique des codes de réponse. Le routeur s'enregistre
// directement sur ces chemins pour éviter toute dérive du contrat.
package contract

import (
	"fmt"
	"net/http"
	"strings"
)

// Endpoint décrit une opération exposée : méthode HTTP et gabarit de chemin.
// Les paramètres de chemin utilisent la syntaxe :param.
type Endpoint struct {
	Method string
	Path   string
}

// Codes de réponse : 200/201 succès, 400 {message, field?} pour une entrée
// invalide, 404 {message} pour un identifiant qui ne résout pas, 500 opaque.
var (
	AgentsList   = Endpoint{http.MethodGet, "/api/agents"}
	AgentsGet    = Endpoint{http.MethodGet, "/api/agents/:id"}
	AgentsCreate = Endpoint{http.MethodPost, "/api/agents"}

	TrainingsList      = Endpoint{http.MethodGet, "/api/trainings"}
	TrainingsCreate    = Endpoint{http.MethodPost, "/api/trainings"}
	TrainingsUpdate    = Endpoint{http.MethodPatch, "/api/trainings/:id"}
	TrainingsUploadURL = Endpoint{http.MethodGet, "/api/trainings/upload-url"}

	ParticipationsCreate = Endpoint{http.MethodPost, "/api/participations"}
	ParticipationsBatch  = Endpoint{http.MethodPost, "/api/participations/batch"}

	Stats = Endpoint{http.MethodGet, "/api/stats"}
)

// BuildURL substitue les paramètres :param d'un gabarit de chemin par les
// valeurs fournies. Les clés absentes du gabarit sont ignorées.
//
//	BuildURL("/api/agents/:id", map[string]any{"id": 7}) == "/api/agents/7"
func BuildURL(path string, params map[string]any) string {
	url := path
	for key, value := range params {
		placeholder := ":" + key
		if strings.Contains(url, placeholder) {
			url = strings.ReplaceAll(url, placeholder, fmt.Sprint(value))
		}
	}
	return url
}
