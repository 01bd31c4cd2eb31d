package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
	"github.com/AlexanderWinters/the-score-card/internal/store/models"
)

// ErrTeeBoxInUse is returned when an update would drop a tee box that saved rounds reference.
var ErrTeeBoxInUse = errors.New("tee box has saved rounds")

// Courses persists the course catalog.
type Courses struct {
	db *bun.DB
}

// NewCourses constructs a course repository.
func NewCourses(db *bun.DB) *Courses {
	return &Courses{db: db}
}

// List returns course summaries ordered by id. Inactive courses are skipped
// unless includeInactive is set.
func (r *Courses) List(ctx context.Context, includeInactive bool) ([]courses.Summary, error) {
	var rows []models.Course
	q := r.db.NewSelect().Model(&rows).OrderExpr("c.id ASC")
	if !includeInactive {
		q = q.Where("c.active = ?", true)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	out := make([]courses.Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCourse(&row).Summary())
	}
	return out, nil
}

// Get loads a course with its tee boxes and holes.
func (r *Courses) Get(ctx context.Context, id int64) (courses.Course, error) {
	row := new(models.Course)
	err := r.db.NewSelect().
		Model(row).
		Relation("TeeBoxes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("t.id ASC")
		}).
		Relation("TeeBoxes.Holes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("h.number ASC")
		}).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		return courses.Course{}, notFound(err)
	}
	return toCourse(row), nil
}

// Count returns the number of stored courses.
func (r *Courses) Count(ctx context.Context) (int, error) {
	n, err := r.db.NewSelect().Model((*models.Course)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return n, nil
}

// Names returns the lower-cased names of all stored courses.
func (r *Courses) Names(ctx context.Context) (map[string]struct{}, error) {
	var names []string
	if err := r.db.NewSelect().Model((*models.Course)(nil)).Column("name").Scan(ctx, &names); err != nil {
		return nil, fmt.Errorf("list course names: %w", err)
	}
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[strings.ToLower(n)] = struct{}{}
	}
	return out, nil
}

// Create stores a new active course and returns its id.
func (r *Courses) Create(ctx context.Context, in courses.CourseInput) (int64, error) {
	ids, err := r.CreateMany(ctx, []courses.CourseInput{in})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// CreateMany stores all courses in one transaction.
func (r *Courses) CreateMany(ctx context.Context, ins []courses.CourseInput) ([]int64, error) {
	ids := make([]int64, 0, len(ins))
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, in := range ins {
			row := &models.Course{
				Name:        in.Name,
				Location:    in.Location,
				Description: in.Description,
				Active:      true,
			}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return fmt.Errorf("insert course %q: %w", in.Name, err)
			}
			for _, tee := range in.TeeBoxes {
				if _, err := insertTeeBox(ctx, tx, row.ID, tee); err != nil {
					return err
				}
			}
			ids = append(ids, row.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Update replaces the course fields and tee boxes. Tee boxes are matched by
// name so that saved rounds keep pointing at the same rows.
func (r *Courses) Update(ctx context.Context, id int64, in courses.CourseInput) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.Course)(nil)).
			Set("name = ?", in.Name).
			Set("location = ?", in.Location).
			Set("description = ?", in.Description).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update course: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}

		var existing []models.TeeBox
		if err := tx.NewSelect().Model(&existing).Where("t.course_id = ?", id).Scan(ctx); err != nil {
			return fmt.Errorf("load tee boxes: %w", err)
		}
		byName := make(map[string]models.TeeBox, len(existing))
		for _, t := range existing {
			byName[strings.ToLower(t.Name)] = t
		}

		for _, tee := range in.TeeBoxes {
			key := strings.ToLower(tee.Name)
			current, ok := byName[key]
			if !ok {
				if _, err := insertTeeBox(ctx, tx, id, tee); err != nil {
					return err
				}
				continue
			}
			delete(byName, key)
			if _, err := tx.NewUpdate().Model((*models.TeeBox)(nil)).
				Set("name = ?", tee.Name).
				Set("color = ?", tee.Color).
				Where("id = ?", current.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("update tee box: %w", err)
			}
			if _, err := tx.NewDelete().Model((*models.Hole)(nil)).Where("tee_box_id = ?", current.ID).Exec(ctx); err != nil {
				return fmt.Errorf("clear holes: %w", err)
			}
			if err := insertHoles(ctx, tx, current.ID, tee.Holes); err != nil {
				return err
			}
		}

		for _, stale := range byName {
			used, err := tx.NewSelect().Model((*models.Round)(nil)).Where("tee_box_id = ?", stale.ID).Exists(ctx)
			if err != nil {
				return fmt.Errorf("check tee box usage: %w", err)
			}
			if used {
				return fmt.Errorf("%s: %w", stale.Name, ErrTeeBoxInUse)
			}
			if _, err := tx.NewDelete().Model((*models.Hole)(nil)).Where("tee_box_id = ?", stale.ID).Exec(ctx); err != nil {
				return fmt.Errorf("delete holes: %w", err)
			}
			if _, err := tx.NewDelete().Model((*models.TeeBox)(nil)).Where("id = ?", stale.ID).Exec(ctx); err != nil {
				return fmt.Errorf("delete tee box: %w", err)
			}
		}
		return nil
	})
}

// ToggleActive flips the active flag and returns the new value.
func (r *Courses) ToggleActive(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := new(models.Course)
		if err := tx.NewSelect().Model(row).Column("id", "active").Where("c.id = ?", id).Scan(ctx); err != nil {
			return notFound(err)
		}
		active = !row.Active
		_, err := tx.NewUpdate().Model((*models.Course)(nil)).Set("active = ?", active).Where("id = ?", id).Exec(ctx)
		return err
	})
	return active, err
}

func insertTeeBox(ctx context.Context, tx bun.Tx, courseID int64, tee courses.TeeBoxInput) (int64, error) {
	row := &models.TeeBox{CourseID: courseID, Name: tee.Name, Color: tee.Color}
	if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
		return 0, fmt.Errorf("insert tee box %q: %w", tee.Name, err)
	}
	if err := insertHoles(ctx, tx, row.ID, tee.Holes); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func insertHoles(ctx context.Context, tx bun.Tx, teeBoxID int64, holes []courses.Hole) error {
	if len(holes) == 0 {
		return nil
	}
	rows := make([]models.Hole, 0, len(holes))
	for _, h := range holes {
		rows = append(rows, models.Hole{
			TeeBoxID: teeBoxID,
			Number:   h.Number,
			Distance: h.Distance,
			Par:      h.Par,
			HcpIndex: h.HandicapIndex,
		})
	}
	if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("insert holes: %w", err)
	}
	return nil
}

func toCourse(row *models.Course) courses.Course {
	c := courses.Course{
		ID:          row.ID,
		Name:        row.Name,
		Location:    row.Location,
		Description: row.Description,
		Active:      row.Active,
		TeeBoxes:    make([]courses.TeeBox, 0, len(row.TeeBoxes)),
	}
	for _, t := range row.TeeBoxes {
		tee := courses.TeeBox{ID: t.ID, Name: t.Name, Color: t.Color, Holes: make([]courses.Hole, 0, len(t.Holes))}
		for _, h := range t.Holes {
			tee.Holes = append(tee.Holes, courses.Hole{
				Number:        h.Number,
				Distance:      h.Distance,
				Par:           h.Par,
				HandicapIndex: h.HcpIndex,
			})
		}
		c.TeeBoxes = append(c.TeeBoxes, tee)
	}
	return c
}
