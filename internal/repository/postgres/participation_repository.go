package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/domain/repository"
)

type participationRepo struct {
	db *sql.DB
}

func NewParticipationRepository(db *sql.DB) repository.ParticipationRepository {
	return &participationRepo{db: db}
}

const participationColumns = `id, agent_id, training_id, status, validation_status, custom_hours, COALESCE(completion_date,''), COALESCE(supervisor,''), created_at`

func scanParticipation(row interface{ Scan(...interface{}) error }) (*entity.Participation, error) {
	p := &entity.Participation{}
	var hours sql.NullFloat64
	err := row.Scan(&p.ID, &p.AgentID, &p.TrainingID, &p.Status, &p.ValidationStatus, &hours, &p.CompletionDate, &p.Supervisor, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if hours.Valid {
		p.CustomHours = &hours.Float64
	}
	return p, nil
}

func (r *participationRepo) Create(ctx context.Context, participation *entity.Participation) error {
	query := `INSERT INTO participations (agent_id, training_id, status, validation_status, custom_hours, completion_date, supervisor) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		participation.AgentID, participation.TrainingID, participation.Status,
		participation.ValidationStatus, participation.CustomHours,
		participation.CompletionDate, participation.Supervisor,
	).Scan(&participation.ID, &participation.CreatedAt)
}

func (r *participationRepo) GetByAgent(ctx context.Context, agentID int) ([]entity.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations WHERE agent_id = $1`
	rows, err := r.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []entity.Participation
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func (r *participationRepo) GetByAgentWithTraining(ctx context.Context, agentID int) ([]entity.ParticipationWithTraining, error) {
	query := `SELECT p.id, p.agent_id, p.training_id, p.status, p.validation_status, p.custom_hours, COALESCE(p.completion_date,''), COALESCE(p.supervisor,''), p.created_at,
		t.id, t.code, t.title, COALESCE(t.description,''), t.category, COALESCE(t.documents,'[]'), COALESCE(t.date,''), t.duration_hours, t.created_at
		FROM participations p
		JOIN trainings t ON t.id = p.training_id
		WHERE p.agent_id = $1`
	rows, err := r.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []entity.ParticipationWithTraining
	for rows.Next() {
		var pt entity.ParticipationWithTraining
		var hours, duration sql.NullFloat64
		var documents string
		err := rows.Scan(
			&pt.ID, &pt.AgentID, &pt.TrainingID, &pt.Status, &pt.ValidationStatus,
			&hours, &pt.CompletionDate, &pt.Supervisor, &pt.CreatedAt,
			&pt.Training.ID, &pt.Training.Code, &pt.Training.Title, &pt.Training.Description,
			&pt.Training.Category, &documents, &pt.Training.Date, &duration, &pt.Training.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if hours.Valid {
			pt.CustomHours = &hours.Float64
		}
		if duration.Valid {
			pt.Training.DurationHours = &duration.Float64
		}
		if err := json.Unmarshal([]byte(documents), &pt.Training.Documents); err != nil {
			return nil, err
		}
		results = append(results, pt)
	}
	return results, rows.Err()
}

func (r *participationRepo) GetAll(ctx context.Context) ([]entity.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []entity.Participation
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}
