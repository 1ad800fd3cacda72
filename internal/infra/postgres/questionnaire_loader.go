package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"mindcheck-service/internal/domain"
)

// QuestionnaireLoader loads questionnaire JSONB from Postgres.
type QuestionnaireLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionnaireLoader(pool *pgxpool.Pool) *QuestionnaireLoader {
	return &QuestionnaireLoader{pool: pool}
}

func (l *QuestionnaireLoader) LoadQuestionnaire(ctx context.Context, id string) (domain.Questionnaire, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM questionnaires WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Questionnaire{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Questionnaire{}, fmt.Errorf("load questionnaire: %w", err)
	}
	var q domain.Questionnaire
	if err := json.Unmarshal(raw, &q); err != nil {
		return domain.Questionnaire{}, fmt.Errorf("unmarshal questionnaire: %w", err)
	}
	return q, nil
}

// SeedQuestionnaires upserts questionnaires, replacing stored content.
func SeedQuestionnaires(ctx context.Context, pool *pgxpool.Pool, questionnaires map[string]domain.Questionnaire) error {
	batch := &pgx.Batch{}
	for id, q := range questionnaires {
		raw, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal questionnaire %s: %w", id, err)
		}
		batch.Queue(`INSERT INTO questionnaires (id, title, data, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, data = EXCLUDED.data, updated_at = now()`,
			id, q.Title, string(raw))
	}
	results := pool.SendBatch(ctx, batch)
	defer results.Close()
	for range questionnaires {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("seed questionnaires: %w", err)
		}
	}
	return nil
}
