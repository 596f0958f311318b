// README: AI-usage module tests (lazy monthly reset and quota boundary logic).
package aiusage

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

const testAllowance = 3

// TestUseTokenCrossMonthReset verifies that a client with 0 generations left from a previous month
// is reset and the request succeeds.
func TestUseTokenCrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO ai_usage VALUES ('client_reset', 0, '2000-01')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.UseToken(ctx, "client_reset"); err != nil {
		t.Fatalf("UseToken after cross-month reset: %v", err)
	}

	remaining, err := svc.Remaining(ctx, "client_reset")
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining != testAllowance-1 {
		t.Fatalf("expected %d remaining, got %d", testAllowance-1, remaining)
	}
}

// TestUseTokenInsufficientCheck verifies that a client with 0 generations in the current month is blocked.
func TestUseTokenInsufficientCheck(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month) VALUES ('client_zero', 0, TO_CHAR(NOW(), 'YYYY-MM'))"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.UseToken(ctx, "client_zero"); err != ErrInsufficientTokens {
		t.Fatalf("expected ErrInsufficientTokens, got %v", err)
	}
}

// TestUseTokenExhaustsAllowance spends the whole allowance of a new client.
func TestUseTokenExhaustsAllowance(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	remaining, err := svc.Remaining(ctx, "client_new")
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining != testAllowance {
		t.Fatalf("expected full allowance for unknown client, got %d", remaining)
	}

	for i := 0; i < testAllowance; i++ {
		if err := svc.UseToken(ctx, "client_new"); err != nil {
			t.Fatalf("UseToken #%d: %v", i+1, err)
		}
	}
	if err := svc.UseToken(ctx, "client_new"); err != ErrInsufficientTokens {
		t.Fatalf("expected ErrInsufficientTokens after %d uses, got %v", testAllowance, err)
	}
}

func TestNewServiceDefaultAllowance(t *testing.T) {
	if svc := NewService(nil, 0); svc.allowance != DefaultTokens {
		t.Fatalf("expected default allowance %d, got %d", DefaultTokens, svc.allowance)
	}
}

// setupTestService creates a real postgres-backed Service for integration tests.
// It skips the test when ROTEIRO_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("ROTEIRO_TEST_DSN")
	if dsn == "" {
		t.Skip("ROTEIRO_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE ai_usage"); err != nil {
		t.Fatalf("truncate ai_usage: %v", err)
	}

	return NewService(NewStore(db), testAllowance), db
}

func applyMigrations(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	paths, err := filepath.Glob(filepath.Join(root, "migrations", "*.sql"))
	if err != nil {
		return err
	}
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, stmt := range splitSQL(stripSQLComments(string(content))) {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
