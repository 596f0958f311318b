// README: Bench cases for the roteiro API; HTTP contract, quota table, response cache and throughput checks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

const sampleItinerary = "**Dia 1: Chegada**\n\n" +
	"| Período | Atividade | Dicas e Detalhes |\n" +
	"|---|---|---|\n" +
	"| Manhã | Check-in | Hotel no centro |\n" +
	"| Noite | Jantar | Restaurante típico |\n"

const liveInput = "Quero um roteiro de 2 dias em Lisboa"

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 90 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass}
			},
		},

		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK, nil),
		httpCase("API: status", http.MethodGet, base+"/status", nil, http.StatusOK, func(body []byte) error {
			return expectContains(body, "Model loaded and server is running.")
		}),

		httpCase("Parse: itinerary", http.MethodPost, base+"/api/itinerary/parse", map[string]any{"text": sampleItinerary}, http.StatusOK, func(body []byte) error {
			var resp struct {
				IsItinerary bool `json:"is_itinerary"`
				Itinerary   *struct {
					Days []struct {
						Activities []json.RawMessage `json:"activities"`
					} `json:"days"`
				} `json:"itinerary"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return err
			}
			if !resp.IsItinerary || resp.Itinerary == nil || len(resp.Itinerary.Days) != 1 || len(resp.Itinerary.Days[0].Activities) != 2 {
				return fmt.Errorf("unexpected structure: %s", body)
			}
			return nil
		}),
		httpCase("Parse: plain text -> null", http.MethodPost, base+"/api/itinerary/parse", map[string]any{"text": "Claro, me diga o destino!"}, http.StatusOK, func(body []byte) error {
			return expectContains(body, `"itinerary":null`)
		}),

		httpCase("Generate: missing input -> 400", http.MethodPost, base+"/generate_response", map[string]any{}, http.StatusBadRequest, nil),
		httpCase("Chat: empty message -> 400", http.MethodPost, base+"/api/chat", map[string]any{"message": " "}, http.StatusBadRequest, nil),

		liveCase(httpCase("Generate: live reply", http.MethodPost, base+"/generate_response", map[string]any{"user_input": liveInput}, http.StatusOK, func(body []byte) error {
			return expectContains(body, `"response"`)
		})),
		liveCase(TestCase{
			Name: "Chat: send and history",
			Run: func(ctx context.Context, r *Runner) Result {
				return chatRoundTrip(ctx, r, base)
			},
		}),
		liveCase(TestCase{
			Name: "Cache: generation stored in Redis",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				keys, err := r.redis.Keys(ctx, "roteiro:gen:*").Result()
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if len(keys) == 0 {
					return Result{Status: statusFail, Note: "no cached generations"}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("keys=%d", len(keys))}
			},
		}),
		liveCase(TestCase{
			Name: "Quota: usage rows recorded",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				var n int
				if err := r.db.QueryRow(ctx, "SELECT count(*) FROM ai_usage").Scan(&n); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if n == 0 {
					return Result{Status: statusFail, Note: "no ai_usage rows"}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("rows=%d", n)}
			},
		}),

		{
			Name: "Perf: parse throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/itinerary/parse", map[string]any{"text": sampleItinerary})
			},
		},
	}
}

func liveCase(tc TestCase) TestCase {
	run := tc.Run
	tc.Run = func(ctx context.Context, r *Runner) Result {
		if !r.cfg.Live {
			return Result{Status: statusSkip, Note: "live=false"}
		}
		return run(ctx, r)
	}
	return tc
}

func httpCase(name, method, url string, body any, want int, check func([]byte) error) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			status, respBody, latency, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if status != want {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			if check != nil {
				if err := check(respBody); err != nil {
					return Result{Status: statusFail, Latency: latency, Note: err.Error()}
				}
			}
			return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	return resp.StatusCode, b, time.Since(start), err
}

func chatRoundTrip(ctx context.Context, r *Runner, base string) Result {
	status, body, latency, err := r.do(ctx, http.MethodPost, base+"/api/chat", map[string]any{"message": liveInput})
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != http.StatusOK {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
	}
	var ex struct {
		SessionID string `json:"session_id"`
		Reply     struct {
			Type string `json:"type"`
		} `json:"reply"`
	}
	if err := json.Unmarshal(body, &ex); err != nil || ex.SessionID == "" {
		return Result{Status: statusFail, Latency: latency, Note: "missing session_id"}
	}

	status, body, _, err = r.do(ctx, http.MethodGet, base+"/api/chat/"+ex.SessionID+"/messages", nil)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	var hist struct {
		Messages []json.RawMessage `json:"messages"`
	}
	if status != http.StatusOK || json.Unmarshal(body, &hist) != nil || len(hist.Messages) != 3 {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("history status=%d", status)}
	}
	return Result{Status: statusPass, Latency: latency, Note: "reply type=" + ex.Reply.Type}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount, limited int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				mu.Lock()
				switch {
				case err != nil:
					errCount++
				case resp.StatusCode == http.StatusTooManyRequests:
					limited++
				default:
					count++
				}
				mu.Unlock()
				if err == nil {
					_, _ = io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f rate_limited=%d errors=%d", rps, limited, errCount)}
}

func expectContains(body []byte, want string) error {
	if !strings.Contains(string(body), want) {
		return fmt.Errorf("body missing %q", want)
	}
	return nil
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
