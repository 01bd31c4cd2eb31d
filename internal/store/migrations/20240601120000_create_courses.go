package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/AlexanderWinters/the-score-card/internal/store/models"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*models.Course)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create courses: %w", err)
		}
		if _, err := db.NewCreateTable().Model((*models.TeeBox)(nil)).IfNotExists().
			ForeignKey(`("course_id") REFERENCES "courses" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return fmt.Errorf("create tee_boxes: %w", err)
		}
		if _, err := db.NewCreateTable().Model((*models.Hole)(nil)).IfNotExists().
			ForeignKey(`("tee_box_id") REFERENCES "tee_boxes" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return fmt.Errorf("create holes: %w", err)
		}
		if _, err := db.NewCreateIndex().Model((*models.TeeBox)(nil)).IfNotExists().
			Index("idx_tee_boxes_course").Column("course_id").Exec(ctx); err != nil {
			return fmt.Errorf("index tee_boxes: %w", err)
		}
		if _, err := db.NewCreateIndex().Model((*models.Hole)(nil)).IfNotExists().Unique().
			Index("idx_holes_tee_number").Column("tee_box_id", "number").Exec(ctx); err != nil {
			return fmt.Errorf("index holes: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, model := range []any{(*models.Hole)(nil), (*models.TeeBox)(nil), (*models.Course)(nil)} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("drop catalog tables: %w", err)
			}
		}
		return nil
	})
}
