// README: Smoke cases for validation, plan, image proxy, metrics and load.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

const kyotoRequest = "Planning a trip to Kyoto with my family of 4, 2 adults and 2 kids ages 8 and 11"

type Runner struct {
	cfg   Config
	httpc *http.Client
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
		httpc: &http.Client{Timeout: 3 * time.Minute},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Health",
			Run: func(ctx context.Context, r *Runner) Result {
				status, _, latency, err := r.do(ctx, http.MethodGet, base+"/health", nil)
				return expectStatus(status, http.StatusOK, latency, err)
			},
		},
		{
			Name: "Env: Redis image cache",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				keys, err := r.redis.Keys(ctx, "imageproxy:*").Result()
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass, Note: fmt.Sprintf("cached=%d", len(keys))}
			},
		},
		postCase("Plan: bare destination rejected", base+"/api/trips/plan", map[string]string{"request": "Paris"}, http.StatusUnprocessableEntity),
		postCase("Plan: missing ages rejected", base+"/api/trips/plan", map[string]string{"request": "Trip to Rome for 2 people"}, http.StatusUnprocessableEntity),
		postCase("Validate: family request accepted", base+"/api/trips/validate", map[string]string{"request": kyotoRequest}, http.StatusOK),
		postCase("Image proxy: empty prompt", base+"/api/images/dalle", map[string]string{"prompt": " "}, http.StatusBadRequest),
		postCase("Image proxy: unknown backend", base+"/api/images/midjourney", map[string]string{"prompt": "lake"}, http.StatusNotFound),
		{
			Name: "Plan: live providers",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: StatusSkip, Note: "enable with -live"}
				}
				return livePlan(ctx, r, base+"/api/trips/plan")
			},
		},
		{
			Name: "Metrics exposed",
			Run: func(ctx context.Context, r *Runner) Result {
				status, body, latency, err := r.do(ctx, http.MethodGet, base+"/metrics", nil)
				if res := expectStatus(status, http.StatusOK, latency, err); res.Status != StatusPass {
					return res
				}
				if !strings.Contains(string(body), "tripbrief_plans_rejected_total") {
					return Result{Status: StatusFail, Latency: latency, Note: "tripbrief metrics missing"}
				}
				return Result{Status: StatusPass, Latency: latency}
			},
		},
		{
			Name: "Perf: validate load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/trips/validate", map[string]string{"request": kyotoRequest})
			},
		},
	}
}

func postCase(name, url string, payload any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			status, _, latency, err := r.do(ctx, http.MethodPost, url, payload)
			return expectStatus(status, want, latency, err)
		},
	}
}

func expectStatus(got, want int, latency time.Duration, err error) Result {
	if err != nil {
		return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
	}
	if got != want {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", got, want)}
	}
	return Result{Status: StatusPass, Latency: latency}
}

func livePlan(ctx context.Context, r *Runner, url string) Result {
	status, body, latency, err := r.do(ctx, http.MethodPost, url, map[string]string{"request": kyotoRequest})
	if res := expectStatus(status, http.StatusOK, latency, err); res.Status != StatusPass {
		return res
	}
	var resp struct {
		Results []struct {
			Provider string `json:"provider"`
			OK       bool   `json:"ok"`
			Error    string `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
	}
	if len(resp.Results) != 3 {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("slots=%d", len(resp.Results))}
	}
	notes := make([]string, 0, len(resp.Results))
	for _, slot := range resp.Results {
		state := "ok"
		if !slot.OK {
			state = "error"
		}
		notes = append(notes, slot.Provider+"="+state)
	}
	return Result{Status: StatusPass, Latency: latency, Note: strings.Join(notes, " ")}
}

func (r *Runner) do(ctx context.Context, method, url string, payload any) (int, []byte, time.Duration, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, 0, err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, time.Since(start), err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody, time.Since(start), err
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
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
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}
