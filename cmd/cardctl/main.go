// Command cardctl manages the score card database and prints score cards
// from the terminal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"

	appcourses "github.com/AlexanderWinters/the-score-card/internal/app/courses"
	approunds "github.com/AlexanderWinters/the-score-card/internal/app/rounds"
	"github.com/AlexanderWinters/the-score-card/internal/config"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
	"github.com/AlexanderWinters/the-score-card/internal/render"
	"github.com/AlexanderWinters/the-score-card/internal/scoring"
	"github.com/AlexanderWinters/the-score-card/internal/session"
	"github.com/AlexanderWinters/the-score-card/internal/store"
)

func main() {
	_ = godotenv.Load()
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	defaults := config.Default()
	return &cli.App{
		Name:      "cardctl",
		Usage:     "score card database and terminal tools",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-driver",
				Value:   defaults.Database.Driver,
				EnvVars: []string{"DATABASE_DRIVER"},
				Usage:   "sqlite or postgres",
			},
			&cli.StringFlag{
				Name:    "db-url",
				Value:   defaults.Database.URL,
				EnvVars: []string{"DATABASE_URL"},
				Usage:   "database connection string",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			seedCommand(),
			importCommand(),
			cardCommand(),
		},
	}
}

func openDB(c *cli.Context) (*bun.DB, error) {
	return store.Open(c.String("db-driver"), c.String("db-url"))
}

func newLogger(c *cli.Context) *slog.Logger {
	return logging.NewLogger(logging.Config{Level: c.String("log-level"), Output: c.App.ErrWriter})
}

// withDB opens the database, applies pending migrations and hands it to fn.
func withDB(c *cli.Context, fn func(db *bun.DB) error) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()
	if _, err := store.Migrate(c.Context, db); err != nil {
		return err
	}
	return fn(db)
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					db, err := openDB(c)
					if err != nil {
						return err
					}
					defer db.Close()
					return store.NewMigrator(db).Init(c.Context)
				},
			},
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Action: func(c *cli.Context) error {
					db, err := openDB(c)
					if err != nil {
						return err
					}
					defer db.Close()
					group, err := store.Migrate(c.Context, db)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "no new migrations to run")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "migrated to %s\n", group)
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "roll back the last migration group",
				Action: func(c *cli.Context) error {
					db, err := openDB(c)
					if err != nil {
						return err
					}
					defer db.Close()
					migrator := store.NewMigrator(db)
					if err := migrator.Init(c.Context); err != nil {
						return err
					}
					group, err := migrator.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "no groups to roll back")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "rolled back %s\n", group)
					return nil
				},
			},
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert the sample courses that are missing",
		Action: func(c *cli.Context) error {
			return withDB(c, func(db *bun.DB) error {
				svc := appcourses.NewService(store.NewCourses(db), nil, newLogger(c))
				ids, err := svc.Seed(c.Context)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					fmt.Fprintln(c.App.Writer, "sample courses already present")
					return nil
				}
				fmt.Fprintf(c.App.Writer, "added %d courses\n", len(ids))
				return nil
			})
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import courses from a json, csv, xlsx or yaml file",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("import needs a file path", 2)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			return withDB(c, func(db *bun.DB) error {
				svc := appcourses.NewService(store.NewCourses(db), nil, newLogger(c))
				res, err := svc.ImportFile(c.Context, filepath.Base(path), data)
				if err != nil {
					return err
				}
				for _, s := range res.Skipped {
					fmt.Fprintf(c.App.Writer, "skipped %q: %s\n", s.Name, s.Reason)
				}
				fmt.Fprintf(c.App.Writer, "added %d courses\n", len(res.CourseIDs))
				return nil
			})
		},
	}
}

func cardCommand() *cli.Command {
	return &cli.Command{
		Name:  "card",
		Usage: "print a score card for a course and tee box",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "course", Required: true},
			&cli.Int64Flag{Name: "tee", Required: true},
			&cli.IntFlag{Name: "handicap"},
			&cli.StringFlag{Name: "player"},
			&cli.StringFlag{Name: "scores", Usage: "comma separated strokes per hole, 0 for unplayed"},
			&cli.StringFlag{Name: "putts", Usage: "comma separated putts per hole"},
		},
		Action: func(c *cli.Context) error {
			handicap := c.Int("handicap")
			if handicap < 0 || handicap > session.MaxHandicap {
				return cli.Exit(fmt.Sprintf("handicap must be between 0 and %d", session.MaxHandicap), 2)
			}
			state := scoring.RoundState{
				PlayerName: c.String("player"),
				Handicap:   handicap,
				CourseID:   c.Int64("course"),
				TeeBoxID:   c.Int64("tee"),
			}
			if err := parseHoles(c.String("scores"), state.Scores[:]); err != nil {
				return cli.Exit("scores: "+err.Error(), 2)
			}
			if err := parseHoles(c.String("putts"), state.Putts[:]); err != nil {
				return cli.Exit("putts: "+err.Error(), 2)
			}

			return withDB(c, func(db *bun.DB) error {
				logger := newLogger(c)
				courseSvc := appcourses.NewService(store.NewCourses(db), nil, logger)
				roundSvc := approunds.NewService(store.NewRounds(db), courseSvc, nil, logger)
				course, err := courseSvc.Get(c.Context, state.CourseID)
				if err != nil {
					return err
				}
				tee, err := roundSvc.TeeBox(c.Context, state.CourseID, state.TeeBoxID)
				if err != nil {
					return err
				}
				for _, h := range tee.Holes {
					scoring.ApplyAutoGIR(&state, h.Number-1, h)
				}
				card := scoring.Build(state, tee)
				fmt.Fprintln(c.App.Writer, render.Card(cardTitle(course.Name, tee.Name, state.PlayerName), card))
				return nil
			})
		},
	}
}

func cardTitle(course, tee, player string) string {
	title := course + " (" + tee + ")"
	if player != "" {
		title = player + " at " + title
	}
	return title
}

// parseHoles fills dst from a comma separated list; missing trailing values stay zero.
func parseHoles(raw string, dst []int) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) > len(dst) {
		return fmt.Errorf("at most %d values", len(dst))
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return fmt.Errorf("hole %d: %q is not a valid count", i+1, p)
		}
		dst[i] = v
	}
	return nil
}
