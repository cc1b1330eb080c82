package entity

import (
	"time"
)

// Définition des types ENUM pour garantir la sécurité du typage
type TrainingCategory string
type ParticipationStatus string
type ValidationStatus string

const (
	CategorySecourisme         TrainingCategory = "secourisme"
	CategoryOperationsDiverses TrainingCategory = "opérations diverses"
	CategoryIncendie           TrainingCategory = "incendie"
	CategoryAutre              TrainingCategory = "autre"
)

const (
	StatusPresent ParticipationStatus = "present"
	StatusAbsent  ParticipationStatus = "absent"
	StatusExcused ParticipationStatus = "excused"
)

const (
	ValidationValidated ValidationStatus = "validated"
	ValidationPending   ValidationStatus = "pending"
	ValidationFailed    ValidationStatus = "failed"
)

// DefaultYearlyGoal est l'objectif annuel en heures attribué à la création d'un agent.
const DefaultYearlyGoal = 35

// LegacyGoalHours est l'ancien dénominateur de progression (40h) de l'interface
// historique. Il ne sert plus que pour les agents dont l'objectif en base vaut
// zéro (données antérieures à la migration).
const LegacyGoalHours = 40

// Ranks est l'échelle des grades de sapeurs-pompiers, du plus bas au plus élevé.
var Ranks = []string{
	"Sapeur 2ème classe",
	"Sapeur",
	"Caporal",
	"Caporal-chef",
	"Sergent",
	"Sergent-chef",
	"Adjudant",
	"Adjudant-chef",
	"Lieutenant",
	"Capitaine",
	"Commandant",
	"Lieutenant-colonel",
	"Colonel",
}

// Supervisors est la liste des encadrants habilités à valider une formation.
// Champ libre côté participation : pas de clé étrangère.
var Supervisors = []string{
	"L'HOSPITAL G.",
	"TREPOUT C.",
	"ROUSSEL T.",
	"CHIQUARD M.",
	"AYRAULT J.",
	"CARTAUX P.",
	"PIGNATELLI G.",
}

// IsValidRank vérifie l'appartenance à l'échelle des grades.
func IsValidRank(rank string) bool {
	for _, r := range Ranks {
		if r == rank {
			return true
		}
	}
	return false
}

// IsValid vérifie que la catégorie fait partie des quatre catégories du catalogue.
func (c TrainingCategory) IsValid() bool {
	switch c {
	case CategorySecourisme, CategoryOperationsDiverses, CategoryIncendie, CategoryAutre:
		return true
	}
	return false
}

func (s ParticipationStatus) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusExcused:
		return true
	}
	return false
}

func (v ValidationStatus) IsValid() bool {
	switch v {
	case ValidationValidated, ValidationPending, ValidationFailed:
		return true
	}
	return false
}

// Label retourne le libellé d'affichage du statut de validation.
// Contrat de rendu à préserver à l'identique côté frontend.
func (v ValidationStatus) Label() string {
	switch v {
	case ValidationValidated:
		return "validé"
	case ValidationPending:
		return "à revoir"
	case ValidationFailed:
		return "non validé"
	}
	return string(v)
}

// Color retourne la couleur associée au statut de validation.
func (v ValidationStatus) Color() string {
	switch v {
	case ValidationValidated:
		return "green"
	case ValidationPending:
		return "orange"
	case ValidationFailed:
		return "red"
	}
	return "gray"
}

// Agent définit un sapeur-pompier suivi par la caserne.
type Agent struct {
	ID                 int       `json:"id" db:"id"`
	FirstName          string    `json:"firstName" db:"first_name"`
	LastName           string    `json:"lastName" db:"last_name"`
	Matricule          string    `json:"matricule" db:"matricule"` // e.g. SP2401, unique
	Rank               string    `json:"rank" db:"rank"`
	Phone              string    `json:"phone,omitempty" db:"phone"`
	PhotoURL           string    `json:"photoUrl,omitempty" db:"photo_url"`
	YearlyTrainingGoal int       `json:"yearlyTrainingGoal" db:"yearly_training_goal"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// Training représente une entrée du catalogue de formations
// (un type de formation, pas une session planifiée).
type Training struct {
	ID            int              `json:"id" db:"id"`
	Code          string           `json:"code" db:"code"` // e.g. FOR-001
	Title         string           `json:"title" db:"title"`
	Description   string           `json:"description,omitempty" db:"description"`
	Category      TrainingCategory `json:"category" db:"category"`
	Documents     []string         `json:"documents,omitempty" db:"documents"`
	Date          string           `json:"date,omitempty" db:"date"` // YYYY-MM-DD
	DurationHours *float64         `json:"durationHours,omitempty" db:"duration_hours"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
}

// Participation relie un agent à une formation pour une occurrence donnée.
// customHours et completionDate priment sur les valeurs du catalogue.
type Participation struct {
	ID               int                 `json:"id" db:"id"`
	AgentID          int                 `json:"agentId" db:"agent_id"`
	TrainingID       int                 `json:"trainingId" db:"training_id"`
	Status           ParticipationStatus `json:"status" db:"status"`
	ValidationStatus ValidationStatus    `json:"validationStatus" db:"validation_status"`
	CustomHours      *float64            `json:"customHours,omitempty" db:"custom_hours"`
	CompletionDate   string              `json:"completionDate,omitempty" db:"completion_date"` // YYYY-MM-DD
	Supervisor       string              `json:"supervisor,omitempty" db:"supervisor"`
	CreatedAt        time.Time           `json:"createdAt" db:"created_at"`
}

// Hours retourne la contribution horaire de la participation :
// customHours si renseigné, sinon 0. Jamais la durée nominale du catalogue.
func (p Participation) Hours() float64 {
	if p.CustomHours != nil {
		return *p.CustomHours
	}
	return 0
}

// ParticipationWithTraining est une participation jointe à sa formation.
type ParticipationWithTraining struct {
	Participation
	Training Training `json:"training"`
}

// AgentWithStats est l'agrégat calculé à chaque lecture, jamais persisté.
type AgentWithStats struct {
	Agent
	TotalHours         float64 `json:"totalHours"`
	TrainingCount      int     `json:"trainingCount"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

// AgentDetail est un agent avec son historique complet de participations.
type AgentDetail struct {
	Agent
	Participations []ParticipationWithTraining `json:"participations"`
}
