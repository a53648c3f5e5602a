package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/eslsoft/vocnote/internal/adapter/repository"
	"github.com/eslsoft/vocnote/internal/entity"
	"github.com/eslsoft/vocnote/internal/infrastructure/config"
	"github.com/eslsoft/vocnote/internal/infrastructure/database"
)

func setupCLI(t *testing.T) {
	t.Helper()
	t.Setenv("VOCNOTE_HOME", t.TempDir())
	t.Setenv("VOCNOTE_SEED_EXAMPLES", "false")
	t.Setenv("VOCNOTE_REVIEW_TIMEZONE", "UTC")
	t.Setenv("VOCNOTE_LOG_LEVEL", "error")
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags puts every flag back to its default, cobra keeps values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestCommandsEndToEnd(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "", "add", "ephemeral", "lasting a very short time", "--tags", "adjective,literary")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, `Added "ephemeral"`) || !strings.Contains(out, "1 words in the notebook") {
		t.Fatalf("unexpected add output %q", out)
	}

	if _, err := runCLI(t, "", "add", "resilient", "able to recover quickly", "--tags", "adjective"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err = runCLI(t, "", "list", "--search", "SHORT")
	if err != nil {
		t.Fatalf("list --search: %v", err)
	}
	if !strings.Contains(out, "ephemeral") || strings.Contains(out, "resilient") || !strings.Contains(out, "1 of 1 words") {
		t.Fatalf("unexpected search output %q", out)
	}
	out, err = runCLI(t, "", "list", "--tag", "adjective", "--order-by", "word desc")
	if err != nil {
		t.Fatalf("list --tag: %v", err)
	}
	if strings.Index(out, "resilient") > strings.Index(out, "ephemeral") || !strings.Contains(out, "2 of 2 words") {
		t.Fatalf("unexpected tag listing %q", out)
	}
	out, err = runCLI(t, "", "tags")
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if !strings.Contains(out, "adjective") || !strings.Contains(out, "literary") {
		t.Fatalf("expected both tags, got %q", out)
	}

	out, err = runCLI(t, "", "due")
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if !strings.Contains(out, "2 words due") {
		t.Fatalf("expected the new word to be due, got %q", out)
	}

	out, err = runCLI(t, "\ne\n", "study")
	if err != nil {
		t.Fatalf("study: %v", err)
	}
	// newest first, and the input ends after the first card
	if !strings.Contains(out, "able to recover quickly") || !strings.Contains(out, "Reviewed 1, skipped 0.") {
		t.Fatalf("unexpected study output %q", out)
	}
	if !strings.Contains(out, "mastery 25%, next review in 1 day(s)") {
		t.Fatalf("expected easy review outcome, got %q", out)
	}

	out, err = runCLI(t, "", "stats", "--history")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Streak") {
		t.Fatalf("expected stats table, got %q", out)
	}

	backup := filepath.Join(t.TempDir(), "notebook.json.gz")
	if _, err := runCLI(t, "", "export", "-o", backup); err != nil {
		t.Fatalf("export: %v", err)
	}

	if _, err := runCLI(t, "", "clear", "--yes"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	out, err = runCLI(t, "", "due")
	if err != nil {
		t.Fatalf("due after clear: %v", err)
	}
	if !strings.Contains(out, "Nothing to review") {
		t.Fatalf("expected empty notebook after clear, got %q", out)
	}

	out, err = runCLI(t, "", "import", "-i", backup, "--yes")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 words") {
		t.Fatalf("unexpected import output %q", out)
	}
}

func TestReviewUnknownWord(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "", "review", "missing", "easy")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var n *noticeError
	if !errors.As(err, &n) {
		t.Fatalf("expected a notice for the terminal, got %T", err)
	}
}

func TestClearAbortsWithoutConfirmation(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "n\n", "clear")
	if !errors.Is(err, errClearAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
}

// storeRaw writes payload under the default key of the sqlite store in VOCNOTE_HOME.
func storeRaw(t *testing.T, payload string) {
	t.Helper()
	path, err := config.DBPath()
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	db, err := database.OpenSQLite("file:" + path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()
	repo, err := repository.NewSnapshotRepository(context.Background(), db, "vocnote_data")
	if err != nil {
		t.Fatalf("NewSnapshotRepository: %v", err)
	}
	if err := repo.Save(context.Background(), []byte(payload)); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestUnreadableStoreIsProtected(t *testing.T) {
	setupCLI(t)
	t.Setenv("VOCNOTE_SEED_EXAMPLES", "true")
	storeRaw(t, `{"version":2,"words":[{"id":"x1","word":"keep","meaning":"hold"}]}`)

	_, err := runCLI(t, "", "list")
	if !errors.Is(err, entity.ErrUnreadableStore) {
		t.Fatalf("expected ErrUnreadableStore, got %v", err)
	}
	_, err = runCLI(t, "", "add", "new", "word")
	if !errors.Is(err, entity.ErrUnreadableStore) {
		t.Fatalf("expected add to refuse the unreadable store, got %v", err)
	}

	backup := filepath.Join(t.TempDir(), "backup.json")
	doc := `{"version":1,"words":[{"id":"b1","word":"restored","meaning":"back again"}]}`
	if err := os.WriteFile(backup, []byte(doc), 0o600); err != nil {
		t.Fatalf("write backup: %v", err)
	}
	out, err := runCLI(t, "", "import", "-i", backup, "--yes", "--replace-unreadable")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 1 words") {
		t.Fatalf("unexpected import output %q", out)
	}

	out, err = runCLI(t, "", "list")
	if err != nil {
		t.Fatalf("list after restore: %v", err)
	}
	if !strings.Contains(out, "restored") || strings.Contains(out, "serendipity") {
		t.Fatalf("expected only the restored word, got %q", out)
	}
}
