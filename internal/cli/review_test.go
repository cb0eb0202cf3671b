package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mlktrr/fokus/internal/app"
)

// useTestDB points the CLI at a throwaway database for one test.
func useTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fokus.db")
	viper.Set("db", path)
	t.Cleanup(func() { viper.Set("db", "") })
	return path
}

// runReview executes the review command with fresh flag state and
// returns its output.
func runReview(t *testing.T, args ...string) string {
	t.Helper()
	reviewCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset flag %s: %v", f.Name, err)
		}
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"review"}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("review %v: %v", args, err)
	}
	return buf.String()
}

func TestReviewSaveAndShow(t *testing.T) {
	path := useTestDB(t)

	out := runReview(t, "--week", "2026-W23",
		"--reflection", "Shipped the importer", "--intention", "Fewer meetings")
	if !strings.Contains(out, "Review saved for 2026-W23") {
		t.Fatalf("save output %q", out)
	}

	out = runReview(t, "--week", "2026-W23")
	if !strings.Contains(out, "Shipped the importer") || !strings.Contains(out, "Fewer meetings") {
		t.Fatalf("show output %q", out)
	}

	// The review reached the database, not just the output.
	a, err := app.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if a.Workspace.Reviews["2026-W23"].Reflection != "Shipped the importer" {
		t.Fatal("review not persisted")
	}
}

func TestReviewPartialEditKeepsOtherField(t *testing.T) {
	useTestDB(t)

	runReview(t, "--week", "2026-W23", "--reflection", "Good week")
	runReview(t, "--week", "2026-W23", "--intention", "Keep going")

	out := runReview(t, "--week", "2026-W23")
	if !strings.Contains(out, "Good week") || !strings.Contains(out, "Keep going") {
		t.Fatalf("show output %q", out)
	}
}

func TestReviewShowAbsentWeek(t *testing.T) {
	useTestDB(t)

	out := runReview(t, "--week", "2020-W01")
	if !strings.Contains(out, "No review for 2020-W01 yet.") {
		t.Fatalf("output %q", out)
	}
}

func TestReviewList(t *testing.T) {
	useTestDB(t)

	runReview(t, "--week", "2026-W10", "--intention", "Start strong")
	runReview(t, "--week", "2026-W09", "--reflection", "Wrapped up")

	out := runReview(t, "--list")
	first := strings.Index(out, "2026-W09")
	second := strings.Index(out, "2026-W10")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("expected sorted week list, got %q", out)
	}
}
