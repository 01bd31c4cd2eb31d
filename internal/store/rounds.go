package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/AlexanderWinters/the-score-card/internal/domain/rounds"
	"github.com/AlexanderWinters/the-score-card/internal/store/models"
)

// Rounds persists saved rounds.
type Rounds struct {
	db *bun.DB
}

// NewRounds constructs a round repository.
func NewRounds(db *bun.DB) *Rounds {
	return &Rounds{db: db}
}

// Create inserts a round and returns its id.
func (r *Rounds) Create(ctx context.Context, round rounds.Round) (int64, error) {
	row := &models.Round{
		UserID:   round.UserID,
		CourseID: round.CourseID,
		TeeBoxID: round.TeeBoxID,
		Date:     round.Date,
		Scores:   round.Scores,
		Putts:    round.Putts,
		GIR:      round.GIR,
		Fairways: round.Fairways,
		Bunkers:  round.Bunkers,
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return 0, fmt.Errorf("insert round: %w", err)
	}
	return row.ID, nil
}

type historyRow struct {
	models.Round `bun:",extend"`

	CourseName string `bun:"course_name"`
	TeeName    string `bun:"tee_name"`
	TeeColor   string `bun:"tee_color"`
}

// ListByUser returns the user's rounds, newest date first.
func (r *Rounds) ListByUser(ctx context.Context, userID int64) ([]rounds.HistoryEntry, error) {
	var rows []historyRow
	err := r.db.NewSelect().
		Model(&rows).
		ColumnExpr("r.*").
		ColumnExpr("c.name AS course_name").
		ColumnExpr("t.name AS tee_name").
		ColumnExpr("t.color AS tee_color").
		Join("JOIN courses AS c ON c.id = r.course_id").
		Join("JOIN tee_boxes AS t ON t.id = r.tee_box_id").
		Where("r.user_id = ?", userID).
		OrderExpr("r.date DESC, r.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	out := make([]rounds.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, rounds.HistoryEntry{
			Round: rounds.Round{
				ID:        row.ID,
				UserID:    row.UserID,
				CourseID:  row.CourseID,
				TeeBoxID:  row.TeeBoxID,
				Date:      row.Date,
				Scores:    row.Scores,
				Putts:     row.Putts,
				GIR:       row.GIR,
				Fairways:  row.Fairways,
				Bunkers:   row.Bunkers,
				CreatedAt: row.CreatedAt,
			},
			CourseName: row.CourseName,
			TeeName:    row.TeeName,
			TeeColor:   row.TeeColor,
			TotalScore: rounds.TotalScore(row.Scores),
		})
	}
	return out, nil
}

// Ping checks the database connection.
func Ping(ctx context.Context, db *bun.DB) error {
	return db.PingContext(ctx)
}
