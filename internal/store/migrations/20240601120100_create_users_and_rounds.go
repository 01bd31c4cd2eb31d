package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/AlexanderWinters/the-score-card/internal/store/models"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create users: %w", err)
		}
		if _, err := db.NewCreateTable().Model((*models.Round)(nil)).IfNotExists().
			ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
			ForeignKey(`("course_id") REFERENCES "courses" ("id")`).
			ForeignKey(`("tee_box_id") REFERENCES "tee_boxes" ("id")`).
			Exec(ctx); err != nil {
			return fmt.Errorf("create rounds: %w", err)
		}
		if _, err := db.NewCreateIndex().Model((*models.Round)(nil)).IfNotExists().
			Index("idx_rounds_user_date").Column("user_id", "date").Exec(ctx); err != nil {
			return fmt.Errorf("index rounds: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, model := range []any{(*models.Round)(nil), (*models.User)(nil)} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("drop account tables: %w", err)
			}
		}
		return nil
	})
}
