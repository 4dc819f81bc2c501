// Load and consistency client for the loyalty service. It registers a member,
// activates a DEPOSIT promotion, then fires concurrent enrollment attempts at
// the same (member, promo) pair and verifies exactly one succeeded.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	baseURL        = "http://localhost:8080"
	fixedWorkers   = 50
	fixedRPSTarget = 700
	fixedDuration  = 10 * time.Second
	defaultTimeout = 30 * time.Second
)

// PerfResult gathers aggregated metrics for the run.
// Atomic counters avoid lock contention on hot paths.
type PerfResult struct {
	TotalRequests int64
	SuccessCount  int64
	DuplicateHits int64
	ErrorCount    int64
	LatencySum    int64 // nanoseconds
}

func main() {
	transport := &http.Transport{
		MaxIdleConns:        fixedWorkers * 4,
		MaxIdleConnsPerHost: fixedWorkers * 4,
		IdleConnTimeout:     90 * time.Second,
	}
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   defaultTimeout,
	}

	c := &client{http: httpClient}

	username := fmt.Sprintf("perf-%d", time.Now().UnixNano())
	memberID, err := c.createMember(username, "perf-password")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create member: %v\n", err)
		os.Exit(1)
	}
	if err := c.login(username, "perf-password"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to log in: %v\n", err)
		os.Exit(1)
	}
	promoID, err := c.createPromo(fmt.Sprintf("perf promo %d", time.Now().UnixNano()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create promo: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("==========================================")
	fmt.Println("loyalty enrollment load test")
	fmt.Println("==========================================")
	fmt.Printf("member  : %s\n", memberID)
	fmt.Printf("promo   : %s\n", promoID)
	fmt.Printf("rps     : %d\n", fixedRPSTarget)
	fmt.Printf("duration: %v\n", fixedDuration)
	fmt.Println("==========================================")

	burst := fixedRPSTarget / fixedWorkers
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(fixedRPSTarget), burst)

	ctx, cancel := context.WithTimeout(context.Background(), fixedDuration)
	defer cancel()

	var result PerfResult
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < fixedWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				began := time.Now()
				outcome := c.enroll(ctx, promoID, memberID)
				atomic.AddInt64(&result.LatencySum, int64(time.Since(began)))
				atomic.AddInt64(&result.TotalRequests, 1)
				switch outcome {
				case enrollOK:
					atomic.AddInt64(&result.SuccessCount, 1)
				case enrollDuplicate:
					atomic.AddInt64(&result.DuplicateHits, 1)
				default:
					atomic.AddInt64(&result.ErrorCount, 1)
				}
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	total := atomic.LoadInt64(&result.TotalRequests)
	success := atomic.LoadInt64(&result.SuccessCount)
	duplicates := atomic.LoadInt64(&result.DuplicateHits)
	errs := atomic.LoadInt64(&result.ErrorCount)

	var avgLatency time.Duration
	if total > 0 {
		avgLatency = time.Duration(atomic.LoadInt64(&result.LatencySum) / total)
	}

	fmt.Println("==========================================")
	fmt.Printf("elapsed     : %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("requests    : %d (%.0f rps)\n", total, float64(total)/elapsed.Seconds())
	fmt.Printf("successes   : %d\n", success)
	fmt.Printf("duplicates  : %d\n", duplicates)
	fmt.Printf("errors      : %d\n", errs)
	fmt.Printf("avg latency : %v\n", avgLatency)
	fmt.Println("==========================================")

	// Exactly one enrollment may win; everything else must be the
	// duplicate rejection.
	if success != 1 || errs > 0 {
		fmt.Println("❌ CONSISTENCY CHECK FAILED")
		os.Exit(1)
	}
	fmt.Println("✅ consistency check passed: exactly one enrollment won")
}

type client struct {
	http  *http.Client
	token string
}

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

func (c *client) graphql(ctx context.Context, query string, variables map[string]interface{}) (*graphqlResponse, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) createMember(username, password string) (string, error) {
	resp, err := c.graphql(context.Background(),
		`mutation ($username: String!, $password: String!) {
			createMember(username: $username, password: $password, balance: 100) { id }
		}`,
		map[string]interface{}{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	if len(resp.Errors) > 0 {
		return "", fmt.Errorf("createMember: %s", resp.Errors[0].Message)
	}
	var member struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data["createMember"], &member); err != nil {
		return "", err
	}
	return member.ID, nil
}

func (c *client) login(username, password string) error {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := c.http.Post(baseURL+"/auth", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login: unexpected status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

func (c *client) createPromo(name string) (string, error) {
	resp, err := c.graphql(context.Background(),
		`mutation ($name: String!) {
			createPromo(name: $name, template: DEPOSIT, status: ACTIVE, minimumBalance: 25) { id }
		}`,
		map[string]interface{}{"name": name})
	if err != nil {
		return "", err
	}
	if len(resp.Errors) > 0 {
		return "", fmt.Errorf("createPromo: %s", resp.Errors[0].Message)
	}
	var promo struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data["createPromo"], &promo); err != nil {
		return "", err
	}
	return promo.ID, nil
}

type enrollOutcome int

const (
	enrollOK enrollOutcome = iota
	enrollDuplicate
	enrollError
)

func (c *client) enroll(ctx context.Context, promoID, memberID string) enrollOutcome {
	resp, err := c.graphql(ctx,
		`mutation ($promoId: String!, $memberId: String!) {
			enrollToPromo(promoId: $promoId, memberId: $memberId)
		}`,
		map[string]interface{}{"promoId": promoID, "memberId": memberID})
	if err != nil {
		return enrollError
	}
	if len(resp.Errors) > 0 {
		if resp.Errors[0].Extensions.Code == "EXISTING_ENROLLMENT" {
			return enrollDuplicate
		}
		return enrollError
	}
	return enrollOK
}
