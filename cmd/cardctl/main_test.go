package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/AlexanderWinters/the-score-card/internal/store"
	"github.com/AlexanderWinters/the-score-card/internal/testutil"
)

func runCLI(t *testing.T, dsn string, args ...string) (string, error) {
	t.Helper()
	prev := cli.OsExiter
	cli.OsExiter = func(int) {}
	defer func() { cli.OsExiter = prev }()

	var out bytes.Buffer
	argv := append([]string{"cardctl", "--db-driver", "sqlite", "--db-url", dsn}, args...)
	err := newApp(&out).Run(argv)
	return out.String(), err
}

func tempDSN(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "cardctl.db")
}

func TestMigrateUpAndRollback(t *testing.T) {
	dsn := tempDSN(t)

	out, err := runCLI(t, dsn, "migrate", "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	out, err = runCLI(t, dsn, "migrate", "up")
	if err != nil || !strings.Contains(out, "migrated to") {
		t.Fatalf("expected migration, got %q (%v)", out, err)
	}

	out, err = runCLI(t, dsn, "migrate", "up")
	if err != nil || !strings.Contains(out, "no new migrations") {
		t.Fatalf("expected no-op migration, got %q (%v)", out, err)
	}

	out, err = runCLI(t, dsn, "migrate", "rollback")
	if err != nil || !strings.Contains(out, "rolled back") {
		t.Fatalf("expected rollback, got %q (%v)", out, err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	dsn := tempDSN(t)

	out, err := runCLI(t, dsn, "seed")
	if err != nil || !strings.Contains(out, "added") {
		t.Fatalf("expected seed, got %q (%v)", out, err)
	}

	out, err = runCLI(t, dsn, "seed")
	if err != nil || !strings.Contains(out, "already present") {
		t.Fatalf("expected no-op seed, got %q (%v)", out, err)
	}
}

func TestImportJSONFile(t *testing.T) {
	dsn := tempDSN(t)
	data, err := json.Marshal(testutil.SampleCourseInput("Imported Links"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "course.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := runCLI(t, dsn, "import", path)
	if err != nil || !strings.Contains(out, "added 1 courses") {
		t.Fatalf("expected import, got %q (%v)", out, err)
	}
}

func TestImportRequiresPath(t *testing.T) {
	if _, err := runCLI(t, tempDSN(t), "import"); err == nil {
		t.Fatalf("expected missing path error")
	}
}

func TestImportRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := runCLI(t, tempDSN(t), "import", path); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestCardPrintsScoreCard(t *testing.T) {
	dsn := tempDSN(t)
	if _, err := runCLI(t, dsn, "seed"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	db, err := store.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repo := store.NewCourses(db)
	list, err := repo.List(context.Background(), false)
	if err != nil || len(list) == 0 {
		t.Fatalf("list courses: %v", err)
	}
	course, err := repo.Get(context.Background(), list[0].ID)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	_ = db.Close()

	out, err := runCLI(t, dsn, "card",
		"--course", itoa(course.ID),
		"--tee", itoa(course.TeeBoxes[0].ID),
		"--player", "Sam",
		"--handicap", "10",
		"--scores", "4,5,3",
		"--putts", "2,2,1",
	)
	if err != nil {
		t.Fatalf("card: %v", err)
	}
	for _, want := range []string{"Sam at", "Gross", "Putts"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in card output:\n%s", want, out)
		}
	}
}

func TestCardRejectsBadInput(t *testing.T) {
	dsn := tempDSN(t)
	cases := [][]string{
		{"card", "--course", "1", "--tee", "1", "--handicap", "60"},
		{"card", "--course", "1", "--tee", "1", "--scores", "4,x"},
		{"card", "--course", "99", "--tee", "1"},
		{"card", "--tee", "1"},
	}
	for _, args := range cases {
		if _, err := runCLI(t, dsn, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestParseHoles(t *testing.T) {
	dst := make([]int, 18)
	if err := parseHoles(" 4, 5 ,3", dst); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dst[0] != 4 || dst[1] != 5 || dst[2] != 3 || dst[3] != 0 {
		t.Fatalf("unexpected values %v", dst[:4])
	}

	if err := parseHoles("", make([]int, 18)); err != nil {
		t.Fatalf("empty input should be fine: %v", err)
	}
	if err := parseHoles(strings.Repeat("4,", 18)+"4", make([]int, 18)); err == nil {
		t.Fatalf("expected too many values error")
	}
	if err := parseHoles("-1", make([]int, 18)); err == nil {
		t.Fatalf("expected negative value error")
	}
}

func TestCardTitle(t *testing.T) {
	if got := cardTitle("Pines", "White", ""); got != "Pines (White)" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := cardTitle("Pines", "White", "Ana"); got != "Ana at Pines (White)" {
		t.Fatalf("unexpected title %q", got)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
