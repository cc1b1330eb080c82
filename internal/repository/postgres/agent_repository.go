package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/caserne/backend/internal/domain/entity"
	"github.com/caserne/backend/internal/domain/repository"
)

type agentRepo struct {
	db *sql.DB
}

func NewAgentRepository(db *sql.DB) repository.AgentRepository {
	return &agentRepo{db: db}
}

const agentColumns = `id, first_name, last_name, matricule, rank, COALESCE(phone,''), COALESCE(photo_url,''), yearly_training_goal, created_at`

func scanAgent(row interface{ Scan(...interface{}) error }) (*entity.Agent, error) {
	a := &entity.Agent{}
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Matricule, &a.Rank, &a.Phone, &a.PhotoURL, &a.YearlyTrainingGoal, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *agentRepo) Create(ctx context.Context, agent *entity.Agent) error {
	query := `INSERT INTO agents (first_name, last_name, matricule, rank, phone, photo_url, yearly_training_goal) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		agent.FirstName, agent.LastName, agent.Matricule, agent.Rank,
		agent.Phone, agent.PhotoURL, agent.YearlyTrainingGoal,
	).Scan(&agent.ID, &agent.CreatedAt)
}

func (r *agentRepo) GetByID(ctx context.Context, id int) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`
	a, err := scanAgent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *agentRepo) GetByMatricule(ctx context.Context, matricule string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE matricule = $1`
	a, err := scanAgent(r.db.QueryRowContext(ctx, query, matricule))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *agentRepo) GetAll(ctx context.Context, filter repository.AgentFilter) ([]entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents`
	var clauses []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		clauses = append(clauses, fmt.Sprintf(`lower(first_name || ' ' || last_name || ' ' || matricule) LIKE $%d`, len(args)))
	}
	if filter.Rank != "" {
		args = append(args, filter.Rank)
		clauses = append(clauses, fmt.Sprintf(`rank = $%d`, len(args)))
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []entity.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *a)
	}
	return results, rows.Err()
}
