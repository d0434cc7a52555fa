package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/R2Ace/number-ninja/internal/core/domain"
	"github.com/R2Ace/number-ninja/internal/core/port"
	"github.com/R2Ace/number-ninja/internal/repository"
)

// GameResultRepository implements port.GameResultRepository using PostgreSQL.
type GameResultRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewGameResultRepository wires a PostgreSQL-backed result repository.
func NewGameResultRepository(pool *pgxpool.Pool) *GameResultRepository {
	return &GameResultRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *GameResultRepository) WithTx(tx pgx.Tx) *GameResultRepository {
	if tx == nil {
		return r
	}
	return &GameResultRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a completed game result.
func (r *GameResultRepository) Create(ctx context.Context, result domain.GameResult) error {
	query := r.builder.Insert("game_results").
		Columns(
			"id",
			"user_id",
			"session_id",
			"difficulty",
			"score",
			"attempts_used",
			"max_attempts",
			"won",
			"daily",
			"achieved_at",
		).
		Values(
			result.ID,
			result.UserID,
			result.SessionID,
			result.Difficulty,
			result.Score,
			result.AttemptsUsed,
			result.MaxAttempts,
			result.Won,
			result.Daily,
			result.AchievedAt,
		)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert result sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrConflict
		}
		return fmt.Errorf("insert result: %w", err)
	}

	return nil
}

// TopN returns the highest-scoring won results across all games.
// Ties break toward fewer attempts, then toward the earlier result.
func (r *GameResultRepository) TopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	return r.topN(ctx, squirrel.Eq{"r.won": true}, n)
}

// DailyTopN returns the ranked results for the daily challenge on the given UTC date.
func (r *GameResultRepository) DailyTopN(ctx context.Context, date time.Time, n int) ([]domain.LeaderboardEntry, error) {
	day := domain.ChallengeDate(date)
	return r.topN(ctx, squirrel.And{
		squirrel.Eq{"r.won": true},
		squirrel.Eq{"r.daily": true},
		squirrel.GtOrEq{"r.achieved_at": day},
		squirrel.Lt{"r.achieved_at": day.Add(24 * time.Hour)},
	}, n)
}

func (r *GameResultRepository) topN(ctx context.Context, where squirrel.Sqlizer, n int) ([]domain.LeaderboardEntry, error) {
	stmt, args, err := r.builder.
		Select(
			"r.user_id",
			"u.username",
			"r.score",
			"r.attempts_used",
			"r.achieved_at",
		).
		From("game_results r").
		Join("users u ON u.id = r.user_id").
		Where(where).
		OrderBy("r.score DESC", "r.attempts_used ASC", "r.achieved_at ASC").
		Limit(uint64(n)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build leaderboard sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0, n)
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.Username,
			&entry.Score,
			&entry.Attempts,
			&entry.AchievedAt,
		); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}

	return entries, nil
}

// HistoryFor returns a player's completed games, newest first, with aggregate stats.
func (r *GameResultRepository) HistoryFor(ctx context.Context, userID string) ([]domain.HistoryEntry, domain.PlayerStats, error) {
	stmt, args, err := r.builder.
		Select("achieved_at", "score", "attempts_used").
		From("game_results").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("achieved_at DESC").
		ToSql()
	if err != nil {
		return nil, domain.PlayerStats{}, fmt.Errorf("build history sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, domain.PlayerStats{}, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var (
		history       []domain.HistoryEntry
		totalScore    int
		totalAttempts int
	)
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(&entry.Date, &entry.Score, &entry.Attempts); err != nil {
			return nil, domain.PlayerStats{}, fmt.Errorf("scan history entry: %w", err)
		}
		history = append(history, entry)
		totalScore += entry.Score
		totalAttempts += entry.Attempts
	}
	if err := rows.Err(); err != nil {
		return nil, domain.PlayerStats{}, fmt.Errorf("iterate history: %w", err)
	}

	stats := domain.PlayerStats{TotalGames: len(history)}
	if stats.TotalGames > 0 {
		stats.AverageScore = float64(totalScore) / float64(stats.TotalGames)
		stats.AverageAttempts = float64(totalAttempts) / float64(stats.TotalGames)
	}

	return history, stats, nil
}

// HasDailyResult reports whether the user already finished the daily challenge for the date.
func (r *GameResultRepository) HasDailyResult(ctx context.Context, userID string, date time.Time) (bool, error) {
	day := domain.ChallengeDate(date)
	stmt, args, err := r.builder.
		Select("1").
		From("game_results").
		Where(squirrel.And{
			squirrel.Eq{"user_id": userID},
			squirrel.Eq{"daily": true},
			squirrel.GtOrEq{"achieved_at": day},
			squirrel.Lt{"achieved_at": day.Add(24 * time.Hour)},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build daily check sql: %w", err)
	}

	var one int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check daily result: %w", err)
	}

	return true, nil
}

var _ port.GameResultRepository = (*GameResultRepository)(nil)
