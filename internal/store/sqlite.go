// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/citizenprep/backend/internal/domain/result"
	"github.com/citizenprep/backend/internal/domain/testset"
)

const schema = `
CREATE TABLE IF NOT EXISTS test_results (
    user_id TEXT NOT NULL,
    test_type TEXT NOT NULL,
    test_id INTEGER NOT NULL,
    attempt_count INTEGER NOT NULL,
    correct_answers INTEGER NOT NULL,
    score_percent INTEGER NOT NULL,
    values_correct INTEGER NOT NULL,
    government_correct INTEGER NOT NULL,
    beliefs_correct INTEGER NOT NULL,
    people_correct INTEGER NOT NULL,
    values_percent INTEGER NOT NULL,
    government_percent INTEGER NOT NULL,
    beliefs_percent INTEGER NOT NULL,
    people_percent INTEGER NOT NULL,
    time_used_seconds INTEGER NOT NULL,
    passed BOOLEAN NOT NULL,
    feedback_rating INTEGER,
    feedback_comment TEXT,
    last_attempted TEXT NOT NULL,
    history TEXT NOT NULL DEFAULT '[]',
    PRIMARY KEY (user_id, test_type, test_id)
);

CREATE TABLE IF NOT EXISTS test_summaries (
    user_id TEXT NOT NULL,
    test_type TEXT NOT NULL,
    total_attempts INTEGER NOT NULL,
    total_passed INTEGER NOT NULL,
    total_failed INTEGER NOT NULL,
    unique_tests_attempted INTEGER NOT NULL,
    unique_tests_passed INTEGER NOT NULL,
    unique_tests_failed INTEGER NOT NULL,
    average_score INTEGER NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (user_id, test_type)
);
`

// SQLiteStore keeps records in two tables: one row per test result and one
// summary row per user and test type.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// A single connection serializes read-modify-write transactions and
	// keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) GetRecord(ctx context.Context, userID string, t testset.TestType) (*result.Record, error) {
	rec, err := loadRecord(ctx, s.db, userID, t)
	if err != nil {
		return nil, persistenceErr("get record", err)
	}
	if len(rec.Results) == 0 {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *SQLiteStore) UpdateRecord(ctx context.Context, userID string, t testset.TestType, fn UpdateFunc) (*result.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistenceErr("begin update", err)
	}
	defer tx.Rollback()

	rec, err := loadRecord(ctx, tx, userID, t)
	if err != nil {
		return nil, persistenceErr("load record", err)
	}
	if err := fn(rec); err != nil {
		return nil, err
	}
	if err := saveRecord(ctx, tx, rec); err != nil {
		return nil, persistenceErr("save record", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistenceErr("commit update", err)
	}
	return rec, nil
}

func loadRecord(ctx context.Context, q queryer, userID string, t testset.TestType) (*result.Record, error) {
	rec := result.NewRecord(userID, t)

	var updatedAt string
	err := q.QueryRowContext(ctx, `
		SELECT total_attempts, total_passed, total_failed, unique_tests_attempted,
		       unique_tests_passed, unique_tests_failed, average_score, updated_at
		FROM test_summaries WHERE user_id = ? AND test_type = ?`,
		userID, string(t),
	).Scan(
		&rec.Summary.TotalAttempts, &rec.Summary.TotalPassed, &rec.Summary.TotalFailed,
		&rec.Summary.UniqueTestsAttempted, &rec.Summary.UniqueTestsPassed,
		&rec.Summary.UniqueTestsFailed, &rec.Summary.AverageScore, &updatedAt,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
	}

	rows, err := q.QueryContext(ctx, `
		SELECT test_id, attempt_count, correct_answers, score_percent,
		       values_correct, government_correct, beliefs_correct, people_correct,
		       values_percent, government_percent, beliefs_percent, people_percent,
		       time_used_seconds, passed, feedback_rating, feedback_comment,
		       last_attempted, history
		FROM test_results WHERE user_id = ? AND test_type = ?
		ORDER BY test_id`,
		userID, string(t),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r             result.TestResult
			rating        sql.NullInt64
			comment       sql.NullString
			lastAttempted string
			historyJSON   string
		)
		if err := rows.Scan(
			&r.TestID, &r.AttemptCount, &r.CorrectAnswers, &r.ScorePercent,
			&r.ValuesCorrect, &r.GovernmentCorrect, &r.BeliefsCorrect, &r.PeopleCorrect,
			&r.ValuesPercent, &r.GovernmentPercent, &r.BeliefsPercent, &r.PeoplePercent,
			&r.TimeUsedSeconds, &r.Passed, &rating, &comment,
			&lastAttempted, &historyJSON,
		); err != nil {
			return nil, err
		}
		if rating.Valid {
			v := int(rating.Int64)
			r.FeedbackRating = &v
		}
		if comment.Valid {
			v := comment.String
			r.FeedbackComment = &v
		}
		if r.LastAttempted, err = parseTime(lastAttempted); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(historyJSON), &r.History); err != nil {
			return nil, err
		}
		rec.Results = append(rec.Results, r)
	}
	return rec, rows.Err()
}

func saveRecord(ctx context.Context, tx *sql.Tx, rec *result.Record) error {
	for _, r := range rec.Results {
		historyJSON, err := json.Marshal(r.History)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO test_results (
			    user_id, test_type, test_id, attempt_count, correct_answers, score_percent,
			    values_correct, government_correct, beliefs_correct, people_correct,
			    values_percent, government_percent, beliefs_percent, people_percent,
			    time_used_seconds, passed, feedback_rating, feedback_comment,
			    last_attempted, history
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id, test_type, test_id) DO UPDATE SET
			    attempt_count = excluded.attempt_count,
			    correct_answers = excluded.correct_answers,
			    score_percent = excluded.score_percent,
			    values_correct = excluded.values_correct,
			    government_correct = excluded.government_correct,
			    beliefs_correct = excluded.beliefs_correct,
			    people_correct = excluded.people_correct,
			    values_percent = excluded.values_percent,
			    government_percent = excluded.government_percent,
			    beliefs_percent = excluded.beliefs_percent,
			    people_percent = excluded.people_percent,
			    time_used_seconds = excluded.time_used_seconds,
			    passed = excluded.passed,
			    feedback_rating = excluded.feedback_rating,
			    feedback_comment = excluded.feedback_comment,
			    last_attempted = excluded.last_attempted,
			    history = excluded.history`,
			rec.UserID, string(rec.TestType), r.TestID, r.AttemptCount, r.CorrectAnswers, r.ScorePercent,
			r.ValuesCorrect, r.GovernmentCorrect, r.BeliefsCorrect, r.PeopleCorrect,
			r.ValuesPercent, r.GovernmentPercent, r.BeliefsPercent, r.PeoplePercent,
			r.TimeUsedSeconds, r.Passed, r.FeedbackRating, r.FeedbackComment,
			formatTime(r.LastAttempted), string(historyJSON),
		)
		if err != nil {
			return err
		}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO test_summaries (
		    user_id, test_type, total_attempts, total_passed, total_failed,
		    unique_tests_attempted, unique_tests_passed, unique_tests_failed,
		    average_score, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, test_type) DO UPDATE SET
		    total_attempts = excluded.total_attempts,
		    total_passed = excluded.total_passed,
		    total_failed = excluded.total_failed,
		    unique_tests_attempted = excluded.unique_tests_attempted,
		    unique_tests_passed = excluded.unique_tests_passed,
		    unique_tests_failed = excluded.unique_tests_failed,
		    average_score = excluded.average_score,
		    updated_at = excluded.updated_at`,
		rec.UserID, string(rec.TestType), rec.Summary.TotalAttempts, rec.Summary.TotalPassed,
		rec.Summary.TotalFailed, rec.Summary.UniqueTestsAttempted, rec.Summary.UniqueTestsPassed,
		rec.Summary.UniqueTestsFailed, rec.Summary.AverageScore, formatTime(rec.UpdatedAt),
	)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
