package tasks

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/tidyx/internal/models"
	"github.com/desertthunder/tidyx/internal/shared"
	tu "github.com/desertthunder/tidyx/internal/testing"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Unix(1700000000, 0)

func testTable() models.Table {
	return models.Table{
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png"}},
		{Name: "Documents", Extensions: []string{".pdf", ".txt"}},
	}
}

func newTestOrganizer(opts Options) *Organizer {
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewOrganizer(shared.NewLogger(io.Discard), opts)
}

// run executes Organize with a buffered progress channel and returns every update sent.
func run(t *testing.T, o *Organizer, dir string, table models.Table) (*RunResult, []ProgressUpdate, error) {
	t.Helper()
	progress := make(chan ProgressUpdate, 256)
	result, err := o.Organize(context.Background(), dir, table, progress)
	close(progress)

	var updates []ProgressUpdate
	for u := range progress {
		updates = append(updates, u)
	}
	return result, updates, err
}

func TestOrganizer_Organize(t *testing.T) {
	t.Run("routes files by extension", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "image")
		tu.MustWriteFile(t, filepath.Join(dir, "b.txt"), "text")
		tu.MustWriteFile(t, filepath.Join(dir, "c.xyz"), "unknown")

		result, _, err := run(t, newTestOrganizer(Options{}), dir, testTable())
		if err != nil {
			t.Fatalf("Organize() error = %v", err)
		}

		if result.Moved != 2 {
			t.Errorf("Moved = %d, want 2", result.Moved)
		}
		if result.Skipped != 1 {
			t.Errorf("Skipped = %d, want 1", result.Skipped)
		}
		if result.Total != 3 {
			t.Errorf("Total = %d, want 3", result.Total)
		}
		if result.Bytes != int64(len("image")+len("text")) {
			t.Errorf("Bytes = %d", result.Bytes)
		}

		if got := tu.MustReadFile(t, filepath.Join(dir, "Images", "a.jpg")); got != "image" {
			t.Errorf("Images/a.jpg content = %q", got)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "Documents", "b.txt"))
		tu.AssertFileNotExists(t, filepath.Join(dir, "a.jpg"))
		tu.AssertFileNotExists(t, filepath.Join(dir, "b.txt"))
		if got := tu.MustReadFile(t, filepath.Join(dir, "c.xyz")); got != "unknown" {
			t.Errorf("c.xyz should be untouched, got %q", got)
		}

		want := []models.Outcome{
			models.MovedTo("Images", "a.jpg"),
			models.MovedTo("Documents", "b.txt"),
			models.SkippedNoMatch(),
		}
		for i, w := range want {
			if result.Results[i].Outcome != w {
				t.Errorf("result %d = %v, want %v", i, result.Results[i].Outcome, w)
			}
		}
		if s := result.Summary(); s.Moved != 2 || s.Total != 3 {
			t.Errorf("Summary() = %+v", s)
		}
	})

	t.Run("matches extensions case-insensitively", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustWriteFile(t, filepath.Join(dir, "SCAN.PDF"), "")

		result, _, err := run(t, newTestOrganizer(Options{}), dir, testTable())
		if err != nil {
			t.Fatalf("Organize() error = %v", err)
		}
		if result.Moved != 1 {
			t.Fatalf("Moved = %d, want 1", result.Moved)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "Documents", "SCAN.PDF"))
	})

	t.Run("leaves subdirectories alone", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustMkdir(t, filepath.Join(dir, "photos"))
		tu.MustWriteFile(t, filepath.Join(dir, "photos", "inner.jpg"), "")
		tu.MustMkdir(t, filepath.Join(dir, "folder.jpg"))

		result, _, err := run(t, newTestOrganizer(Options{}), dir, testTable())
		if err != nil {
			t.Fatalf("Organize() error = %v", err)
		}
		if !result.Empty {
			t.Error("a directory with only subdirectories counts as empty")
		}
		tu.AssertFileExists(t, filepath.Join(dir, "photos", "inner.jpg"))
		tu.AssertDirExists(t, filepath.Join(dir, "folder.jpg"))
	})

	t.Run("empty directory", func(t *testing.T) {
		dir := t.TempDir()

		result, updates, err := run(t, newTestOrganizer(Options{}), dir, testTable())
		if err != nil {
			t.Fatalf("Organize() error = %v", err)
		}

		if !result.Empty || result.Moved != 0 {
			t.Errorf("expected empty run with no moves, got %+v", result)
		}
		if len(result.Results) != 1 || result.Results[0].Outcome.Kind != models.Empty {
			t.Errorf("expected a single informational outcome, got %+v", result.Results)
		}
		if len(updates) != 1 {
			t.Fatalf("expected one progress update, got %d", len(updates))
		}
		if updates[0].Phase != AlreadyEmpty || updates[0].Fraction() != 1 {
			t.Errorf("unexpected update %+v", updates[0])
		}
		if !strings.Contains(updates[0].Message, "already empty") {
			t.Errorf("unexpected message %q", updates[0].Message)
		}
		if len(tu.Snapshot(t, dir)) != 0 {
			t.Error("empty run should not create anything")
		}
	})

	t.Run("missing directory is fatal and touches nothing", func(t *testing.T) {
		parent := t.TempDir()
		before := tu.Snapshot(t, parent)

		o := newTestOrganizer(Options{})
		result, updates, err := run(t, o, filepath.Join(parent, "absent"), testTable())
		if !errors.Is(err, shared.ErrDirectoryNotFound) {
			t.Fatalf("expected ErrDirectoryNotFound, got %v", err)
		}
		if result != nil {
			t.Errorf("expected nil result, got %+v", result)
		}
		if len(updates) != 0 {
			t.Errorf("expected no progress, got %d updates", len(updates))
		}
		if after := tu.Snapshot(t, parent); len(after) != len(before) {
			t.Errorf("filesystem changed: %v", tu.Paths(after))
		}
		if o.State() != Done {
			t.Errorf("State() = %v, want done", o.State())
		}
	})

	t.Run("invalid table is fatal", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "")

		_, _, err := run(t, newTestOrganizer(Options{}), dir, models.Table{})
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "a.jpg"))
	})

	t.Run("category directory blocked by a file", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustWriteFile(t, filepath.Join(dir, "Images"), "i am a file")
		tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "a")
		tu.MustWriteFile(t, filepath.Join(dir, "b.txt"), "b")

		result, updates, err := run(t, newTestOrganizer(Options{}), dir, testTable())
		if err != nil {
			t.Fatalf("per-file failures must not be fatal: %v", err)
		}

		if result.Failed != 1 || result.Moved != 1 || result.Skipped != 1 {
			t.Errorf("unexpected tally moved=%d skipped=%d failed=%d", result.Moved, result.Skipped, result.Failed)
		}

		failures := result.Failures()
		if len(failures) != 1 || failures[0].File.Name != "a.jpg" {
			t.Fatalf("expected a.jpg to fail, got %+v", failures)
		}
		outcome := failures[0].Outcome
		if !errors.Is(outcome.Err, shared.ErrMoveFailed) || !errors.Is(outcome.Err, shared.ErrDirectoryCreateFailed) {
			t.Errorf("expected move and create failures in chain, got %v", outcome.Err)
		}
		if outcome.Reason == "" || outcome.Category != "Images" {
			t.Errorf("unexpected outcome %+v", outcome)
		}

		if got := tu.MustReadFile(t, filepath.Join(dir, "a.jpg")); got != "a" {
			t.Errorf("failed file must stay intact, got %q", got)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "Documents", "b.txt"))

		if last := updates[len(updates)-1]; last.Phase != Complete || last.Fraction() != 1 {
			t.Errorf("run should still complete, got %+v", last)
		}
	})

	t.Run("reuses existing category directories", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustMkdir(t, filepath.Join(dir, "Images"))
		tu.MustWriteFile(t, filepath.Join(dir, "Images", "old.png"), "old")
		tu.MustWriteFile(t, filepath.Join(dir, "new.png"), "new")

		result, _, err := run(t, newTestOrganizer(Options{}), dir, testTable())
		if err != nil {
			t.Fatalf("Organize() error = %v", err)
		}
		if result.Moved != 1 {
			t.Errorf("Moved = %d, want 1", result.Moved)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "Images", "old.png"))
		tu.AssertFileExists(t, filepath.Join(dir, "Images", "new.png"))
	})
}

func TestOrganizer_Collisions(t *testing.T) {
	t.Run("same name across two runs keeps both", func(t *testing.T) {
		dir := t.TempDir()
		o := newTestOrganizer(Options{})

		tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "first")
		if _, _, err := run(t, o, dir, testTable()); err != nil {
			t.Fatalf("first run: %v", err)
		}

		tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "second")
		result, _, err := run(t, o, dir, testTable())
		if err != nil {
			t.Fatalf("second run: %v", err)
		}

		want := models.MovedTo("Images", "a_1700000000.jpg")
		if result.Results[0].Outcome != want {
			t.Errorf("outcome = %v, want %v", result.Results[0].Outcome, want)
		}
		if got := tu.MustReadFile(t, filepath.Join(dir, "Images", "a.jpg")); got != "first" {
			t.Errorf("original copy changed: %q", got)
		}
		if got := tu.MustReadFile(t, filepath.Join(dir, "Images", "a_1700000000.jpg")); got != "second" {
			t.Errorf("renamed copy = %q", got)
		}
	})

	t.Run("renames within the same second stay distinct", func(t *testing.T) {
		dir := t.TempDir()
		o := newTestOrganizer(Options{})

		for i, content := range []string{"one", "two", "three"} {
			tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), content)
			if _, _, err := run(t, o, dir, testTable()); err != nil {
				t.Fatalf("run %d: %v", i, err)
			}
		}

		want := map[string]string{
			"Images/a.jpg":              "one",
			"Images/a_1700000000.jpg":   "two",
			"Images/a_1700000000-2.jpg": "three",
		}
		snap := tu.Snapshot(t, dir)
		for path, content := range want {
			if snap[path] != content {
				t.Errorf("%s = %q, want %q (tree: %v)", path, snap[path], content, tu.Paths(snap))
			}
		}
	})

	t.Run("second run never loses a file", func(t *testing.T) {
		dir := t.TempDir()
		names := []string{"a.jpg", "b.txt", "c.xyz", "d.png"}
		for _, n := range names {
			tu.MustWriteFile(t, filepath.Join(dir, n), n)
		}
		o := newTestOrganizer(Options{})

		if _, _, err := run(t, o, dir, testTable()); err != nil {
			t.Fatalf("first run: %v", err)
		}
		before := tu.Snapshot(t, dir)

		result, _, err := run(t, o, dir, testTable())
		if err != nil {
			t.Fatalf("second run: %v", err)
		}
		if result.Moved != 0 || result.Total != 1 {
			t.Errorf("second run should only see c.xyz, got %+v", result)
		}

		after := tu.Snapshot(t, dir)
		if len(after) != len(before) {
			t.Fatalf("tree changed: %v -> %v", tu.Paths(before), tu.Paths(after))
		}
		files := 0
		for path, content := range after {
			if !strings.HasSuffix(path, "/") {
				files++
				if !strings.HasSuffix(path, content) {
					t.Errorf("%s has content %q", path, content)
				}
			}
		}
		if files != len(names) {
			t.Errorf("expected %d files, found %d", len(names), files)
		}
	})
}

func TestOrganizer_Progress(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.jpg", "b.pdf", "c.xyz", "d.png", "e.txt"} {
		tu.MustWriteFile(t, filepath.Join(dir, n), "")
	}

	_, updates, err := run(t, newTestOrganizer(Options{}), dir, testTable())
	if err != nil {
		t.Fatalf("Organize() error = %v", err)
	}

	if len(updates) != 6 {
		t.Fatalf("expected one update per file plus completion, got %d", len(updates))
	}

	prev := 0.0
	for i, u := range updates {
		f := u.Fraction()
		if f < prev {
			t.Errorf("update %d fraction %v decreased from %v", i, f, prev)
		}
		prev = f
	}

	if first := updates[0]; first.Fraction() <= 0 || first.Message != "Moving: a.jpg..." {
		t.Errorf("unexpected first update %+v", first)
	}
	if res, ok := updates[0].Data.(models.Result); !ok || res.File.Name != "a.jpg" {
		t.Errorf("expected first update to carry a.jpg result, got %#v", updates[0].Data)
	}

	last := updates[len(updates)-1]
	if last.Phase != Complete || last.Fraction() != 1.0 {
		t.Errorf("expected completion at 1.0, got %+v", last)
	}
	if last.Message != "Success! Organized 4 files." {
		t.Errorf("unexpected completion message %q", last.Message)
	}
	if s, ok := last.Data.(Summary); !ok || s.Moved != 4 || s.Total != 5 {
		t.Errorf("expected summary (4, 5), got %#v", last.Data)
	}
}

func TestOrganizer_DryRun(t *testing.T) {
	dir := t.TempDir()
	tu.MustMkdir(t, filepath.Join(dir, "Images"))
	tu.MustWriteFile(t, filepath.Join(dir, "Images", "a.jpg"), "existing")
	tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "incoming")
	tu.MustWriteFile(t, filepath.Join(dir, "b.txt"), "")
	tu.MustWriteFile(t, filepath.Join(dir, "c.xyz"), "")
	before := tu.Snapshot(t, dir)

	result, updates, err := run(t, newTestOrganizer(Options{DryRun: true}), dir, testTable())
	if err != nil {
		t.Fatalf("Organize() error = %v", err)
	}

	if result.Moved != 0 || result.Planned != 2 || !result.DryRun {
		t.Errorf("unexpected tally %+v", result)
	}
	if got := result.Results[0].Outcome; got != models.PlannedFor("Images", "a_1700000000.jpg") {
		t.Errorf("planned outcome = %v", got)
	}
	if got := result.Results[1].Outcome; got != models.PlannedFor("Documents", "b.txt") {
		t.Errorf("planned outcome = %v", got)
	}

	after := tu.Snapshot(t, dir)
	if strings.Join(tu.Paths(after), ",") != strings.Join(tu.Paths(before), ",") {
		t.Errorf("dry run changed the tree: %v", tu.Paths(after))
	}
	if last := updates[len(updates)-1]; !strings.HasPrefix(last.Message, "Dry run: 2 files") {
		t.Errorf("unexpected completion message %q", last.Message)
	}
}

func TestOrganizer_Cancel(t *testing.T) {
	t.Run("canceled before start touches nothing", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustWriteFile(t, filepath.Join(dir, "a.jpg"), "")
		tu.MustWriteFile(t, filepath.Join(dir, "b.txt"), "")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		progress := make(chan ProgressUpdate, 10)
		result, err := newTestOrganizer(Options{}).Organize(ctx, dir, testTable(), progress)
		close(progress)
		if err != nil {
			t.Fatalf("cancellation is not an error, got %v", err)
		}
		if !result.Canceled || result.Moved != 0 {
			t.Errorf("unexpected result %+v", result)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "a.jpg"))
		tu.AssertFileExists(t, filepath.Join(dir, "b.txt"))

		var last ProgressUpdate
		for u := range progress {
			last = u
		}
		if last.Phase != Canceled {
			t.Errorf("expected canceled update, got %+v", last)
		}
	})

	t.Run("canceled between files stops the run", func(t *testing.T) {
		dir := t.TempDir()
		for _, n := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"} {
			tu.MustWriteFile(t, filepath.Join(dir, n), "")
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		progress := make(chan ProgressUpdate)
		done := make(chan struct{})
		go func() {
			defer close(done)
			<-progress
			cancel()
			for range progress {
			}
		}()

		result, err := newTestOrganizer(Options{}).Organize(ctx, dir, testTable(), progress)
		close(progress)
		<-done

		if err != nil {
			t.Fatalf("Organize() error = %v", err)
		}
		if !result.Canceled {
			t.Fatal("expected run to be canceled")
		}
		if result.Moved >= 4 {
			t.Errorf("expected remaining files to be left, moved %d", result.Moved)
		}

		files, _ := os.ReadDir(dir)
		left := 0
		for _, f := range files {
			if !f.IsDir() {
				left++
			}
		}
		if left+result.Moved != 4 {
			t.Errorf("files lost: %d left + %d moved", left, result.Moved)
		}
	})
}

func TestOrganizer_Pace(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		tu.MustWriteFile(t, filepath.Join(dir, n), "")
	}

	o := NewOrganizer(shared.NewLogger(io.Discard), Options{Pace: 10 * time.Millisecond})
	start := time.Now()
	if _, _, err := run(t, o, dir, testTable()); err != nil {
		t.Fatalf("Organize() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("expected pacing to slow the run, took %v", elapsed)
	}
}

func TestOrganizer_State(t *testing.T) {
	o := newTestOrganizer(Options{})
	if o.State() != Idle {
		t.Errorf("new organizer State() = %v, want idle", o.State())
	}

	if _, _, err := run(t, o, t.TempDir(), testTable()); err != nil {
		t.Fatalf("Organize() error = %v", err)
	}
	if o.State() != Done {
		t.Errorf("State() = %v, want done", o.State())
	}

	names := map[State]string{Idle: "idle", Scanning: "scanning", Empty: "empty", Processing: "processing", Done: "done"}
	for s, want := range names {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestProgressUpdate_Fraction(t *testing.T) {
	tc := []struct {
		name   string
		update ProgressUpdate
		want   float64
	}{
		{name: "first of four", update: ProgressUpdate{Step: 1, Total: 4}, want: 0.25},
		{name: "complete", update: ProgressUpdate{Step: 4, Total: 4}, want: 1},
		{name: "no files", update: ProgressUpdate{}, want: 1},
		{name: "overshoot", update: ProgressUpdate{Step: 5, Total: 4}, want: 1},
		{name: "negative", update: ProgressUpdate{Step: -1, Total: 4}, want: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.update.Fraction(); got != tt.want {
				t.Errorf("Fraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForward(t *testing.T) {
	progress := make(chan ProgressUpdate, 2)
	progress <- ProgressUpdate{Step: 1, Total: 2, Message: "Moving: a.jpg..."}
	progress <- ProgressUpdate{Step: 2, Total: 2, Message: "done"}
	close(progress)

	var statuses []string
	var fractions []float64
	Forward(progress, func(status string, fraction float64) {
		statuses = append(statuses, status)
		fractions = append(fractions, fraction)
	})

	if len(statuses) != 2 || statuses[0] != "Moving: a.jpg..." || fractions[1] != 1 {
		t.Errorf("unexpected forwarded values %v %v", statuses, fractions)
	}
}
