package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/domain/repository"
)

type trainingRepo struct {
	db *sql.DB
}

func NewTrainingRepository(db *sql.DB) repository.TrainingRepository {
	return &trainingRepo{db: db}
}

const trainingColumns = `id, code, title, COALESCE(description,''), category, COALESCE(documents,'[]'), COALESCE(date,''), duration_hours, created_at`

// La colonne documents stocke la liste sous forme de tableau JSON.
func scanTraining(row interface{ Scan(...interface{}) error }) (*entity.Training, error) {
	t := &entity.Training{}
	var documents string
	var duration sql.NullFloat64
	err := row.Scan(&t.ID, &t.Code, &t.Title, &t.Description, &t.Category, &documents, &t.Date, &duration, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if duration.Valid {
		t.DurationHours = &duration.Float64
	}
	if err := json.Unmarshal([]byte(documents), &t.Documents); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *trainingRepo) Create(ctx context.Context, training *entity.Training) error {
	documents, err := json.Marshal(training.Documents)
	if err != nil {
		return err
	}
	query := `INSERT INTO trainings (code, title, description, category, documents, date, duration_hours) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		training.Code, training.Title, training.Description, training.Category,
		string(documents), training.Date, training.DurationHours,
	).Scan(&training.ID, &training.CreatedAt)
}

func (r *trainingRepo) GetByID(ctx context.Context, id int) (*entity.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM trainings WHERE id = $1`
	t, err := scanTraining(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *trainingRepo) GetAll(ctx context.Context) ([]entity.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM trainings`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []entity.Training
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *t)
	}
	return results, rows.Err()
}

func (r *trainingRepo) Update(ctx context.Context, training *entity.Training) error {
	documents, err := json.Marshal(training.Documents)
	if err != nil {
		return err
	}
	query := `UPDATE trainings SET code=$1, title=$2, description=$3, category=$4, documents=$5, date=$6, duration_hours=$7 WHERE id=$8`
	_, err = r.db.ExecContext(ctx, query,
		training.Code, training.Title, training.Description, training.Category,
		string(documents), training.Date, training.DurationHours, training.ID,
	)
	return err
}
