// Package metrics expose les collecteurs Prometheus du service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests compte les requêtes HTTP par méthode, chemin et statut.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brigade_http_requests_total",
		Help: "Total des requêtes HTTP traitées.",
	}, []string{"method", "path", "status"})

	// ParticipationsRecorded compte les participations enregistrées,
	// incrémenté par le worker à la consommation de l'événement.
	ParticipationsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brigade_participations_recorded_total",
		Help: "Total des participations enregistrées.",
	})

	// TrainingHoursRecorded cumule les heures de formation enregistrées.
	TrainingHoursRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brigade_training_hours_recorded_total",
		Help: "Total des heures de formation enregistrées.",
	})
)
