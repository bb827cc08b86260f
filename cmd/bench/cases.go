// README: Check cases against the toll API: health, fare scenario, validation codes, consistency, and load.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

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
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
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
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

var scenario = map[string]any{
	"plazas":       []string{"Gombak", "Jalan Duta", "Sungai Rasau"},
	"vehicleClass": "1",
	"distance_km":  15,
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	calc := base + "/api/toll/calculate"
	return []TestCase{
		{
			Name: "Env: Redis rate cache",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		httpCase("Health: live", http.MethodGet, base+"/health", nil, http.StatusOK, nil),
		httpCase("Health: rate store ready", http.MethodGet, base+"/health/ready", nil, http.StatusOK, nil),
		httpCase("Vehicles: list classes", http.MethodGet, base+"/api/vehicle-classes", nil, http.StatusOK, func(body map[string]any) error {
			classes, _ := body["classes"].([]any)
			if len(classes) == 0 {
				return fmt.Errorf("no classes")
			}
			return nil
		}),
		httpCase("Fare: Gombak -> Jalan Duta -> Sungai Rasau", http.MethodPost, calc, scenario, http.StatusOK, checkFare),
		httpCase("Fare: legacy path", http.MethodPost, base+"/toll/calculate", scenario, http.StatusOK, checkFare),
		httpCase("Fare: single plaza -> 400", http.MethodPost, calc, map[string]any{
			"plazas": []string{"Gombak"}, "vehicleClass": "1", "distance_km": 15,
		}, http.StatusBadRequest, wantCode("insufficient_plazas")),
		httpCase("Fare: unknown class -> 400", http.MethodPost, calc, map[string]any{
			"plazas": []string{"Gombak", "Jalan Duta"}, "vehicleClass": "99", "distance_km": 15,
		}, http.StatusBadRequest, wantCode("invalid_vehicle_class")),
		httpCase("Fare: zero distance -> 400", http.MethodPost, calc, map[string]any{
			"plazas": []string{"Gombak", "Jalan Duta"}, "vehicleClass": "1", "distance_km": 0,
		}, http.StatusBadRequest, wantCode("invalid_distance")),
		httpCase("Route: straight line distance", http.MethodPost, base+"/api/route/distance", map[string]any{
			"start": map[string]float64{"lat": 3.2316, "lon": 101.7240},
			"end":   map[string]float64{"lat": 3.1724, "lon": 101.6720},
		}, http.StatusOK, nil),
		{
			Name: "Concurrency: identical fares agree",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentFares(ctx, r, calc)
			},
		},
		{
			Name: "Perf: fare throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, calc, scenario)
			},
		},
	}
}

func checkFare(body map[string]any) error {
	for _, k := range []string{"totalCost", "roadCost", "tollCost", "details", "vehicleType",
		"vehicleClass", "distance", "ratePerKm", "estimatedTime"} {
		if _, ok := body[k]; !ok {
			return fmt.Errorf("missing %s", k)
		}
	}
	road, _ := body["roadCost"].(float64)
	toll, _ := body["tollCost"].(float64)
	total, _ := body["totalCost"].(float64)
	if math.Abs(road+toll-total) > 1e-9 {
		return fmt.Errorf("totalCost %.4f != roadCost+tollCost %.4f", total, road+toll)
	}
	return nil
}

func wantCode(code string) func(map[string]any) error {
	return func(body map[string]any) error {
		if body["code"] != code {
			return fmt.Errorf("code=%v want %s", body["code"], code)
		}
		return nil
	}
}

func httpCase(name, method, url string, body any, want int, check func(map[string]any) error) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, raw, err := r.do(ctx, method, url, body)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			if status != want {
				return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			if check != nil {
				var parsed map[string]any
				if err := json.Unmarshal(raw, &parsed); err != nil {
					return Result{Status: "FAIL", Latency: latency, Note: "body: " + err.Error()}
				}
				if err := check(parsed); err != nil {
					return Result{Status: "FAIL", Latency: latency, Note: err.Error()}
				}
			}
			return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, err
}

// concurrentFares fires the same request in parallel; every response must be byte-identical.
func concurrentFares(ctx context.Context, r *Runner, url string) Result {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		first  []byte
		differ int
		failed int
	)
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, raw, err := r.do(ctx, http.MethodPost, url, scenario)
			mu.Lock()
			defer mu.Unlock()
			if err != nil || status != http.StatusOK {
				failed++
				return
			}
			if first == nil {
				first = raw
			} else if string(first) != string(raw) {
				differ++
			}
		}()
	}
	wg.Wait()

	if failed > 0 || differ > 0 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("failed=%d differing=%d", failed, differ)}
	}
	return Result{Status: "PASS", Note: fmt.Sprintf("requests=%d", r.cfg.Concurrency)}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, _, err := r.do(ctx, http.MethodPost, url, payload)
				mu.Lock()
				if err != nil || status != http.StatusOK {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}
