package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertQuestionsSQL = `
		INSERT INTO questions (title, text, author_id, created_at, likes_count, dislikes_count)
		SELECT t, $2, $3, $4, 0, 0 FROM unnest($1::text[]) AS t
		RETURNING id`

	insertLinksSQL = `
		INSERT INTO question_tags (question_id, tag_id)
		SELECT q, t FROM unnest($1::bigint[]) AS q CROSS JOIN unnest($2::bigint[]) AS t`
)

// PgxSession pins one pooled connection for the duration of a bulk load.
type PgxSession struct {
	conn *pgxpool.Conn
}

func AcquirePgxSession(ctx context.Context, pool *pgxpool.Pool) (*PgxSession, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &PgxSession{conn: conn}, nil
}

func (s *PgxSession) Release() {
	s.conn.Release()
}

func (s *PgxSession) Exec(ctx context.Context, sql string) error {
	// session settings and DDL go over the simple protocol
	_, err := s.conn.Exec(ctx, sql, pgx.QueryExecModeSimpleProtocol)
	return err
}

func (s *PgxSession) InsertQuestions(ctx context.Context, b QuestionBatch) (int, error) {
	tagIDs := make([]int64, len(b.TagIDs))
	for i, id := range b.TagIDs {
		tagIDs[i] = int64(id)
	}

	var inserted int
	err := pgx.BeginFunc(ctx, s.conn, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, insertQuestionsSQL, b.Titles, b.Text, int64(b.AuthorID), b.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
		ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return fmt.Errorf("collect question ids: %w", err)
		}
		inserted = len(ids)

		if len(ids) == 0 || len(tagIDs) == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, insertLinksSQL, ids, tagIDs); err != nil {
			return fmt.Errorf("insert tag links: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
