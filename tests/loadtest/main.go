package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL         = "http://127.0.0.1:8090"
	numWorkers      = 50
	testDuration    = 10 * time.Second
	numArtists      = 50
	numArtworks     = 200
	numCounterparts = 20
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== Artfolio Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Artists: %d | Artworks: %d | Counterparts: %d\n\n", numArtists, numArtworks, numCounterparts)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 0: a signed-in user and a catalog to talk about
	fmt.Println("\n--- Phase 0: Seeding session and catalog ---")
	user := fmt.Sprintf("load_%d", time.Now().UnixNano())
	r := send(http.MethodPost, "/session/register", "POST /session/register", map[string]string{"username": user, "password": "load"}, http.StatusCreated)
	if r.err {
		fmt.Printf("FAILED: register returned %d\n", r.status)
		return
	}
	for i := 0; i < numArtworks; i++ {
		send(http.MethodPost, "/artworks", "POST /artworks", artwork(i), http.StatusCreated)
	}
	fmt.Println("OK")

	// Phase 1: Write-heavy load
	fmt.Println("\n--- Phase 1: Write-heavy load (70% write, 30% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		x := rng.Float64()
		switch {
		case x < 0.30:
			return doSendMessage(rng)
		case x < 0.45:
			return doLike(rng)
		case x < 0.60:
			return doFollow(rng)
		case x < 0.70:
			return doMarkRead(rng)
		case x < 0.85:
			return doGet("/threads")
		default:
			return doGet("/artworks")
		}
	})

	// Phase 2: Read-heavy load
	fmt.Println("\n--- Phase 2: Read-heavy load (10% write, 90% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		x := rng.Float64()
		switch {
		case x < 0.10:
			return doSendMessage(rng)
		case x < 0.40:
			return doGet("/threads")
		case x < 0.60:
			return doGet("/artworks")
		case x < 0.75:
			return doGet("/liked")
		case x < 0.90:
			return doGet(fmt.Sprintf("/followers/count?id=artist_%d", rng.Intn(numArtists)))
		default:
			return doGet(fmt.Sprintf("/thread?counterparty=artist_%d", rng.Intn(numCounterparts)))
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func artwork(i int) map[string]interface{} {
	artist := i % numArtists
	return map[string]interface{}{
		"id":         fmt.Sprintf("art_%d", i),
		"title":      fmt.Sprintf("Study #%d", i),
		"artistId":   fmt.Sprintf("artist_%d", artist),
		"artistName": fmt.Sprintf("Artist %d", artist),
	}
}

func send(method, path, endpoint string, body interface{}, want int) result {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func doGet(path string) result {
	endpoint := path
	if i := bytes.IndexByte([]byte(path), '?'); i >= 0 {
		endpoint = path[:i]
	}
	return send(http.MethodGet, path, "GET "+endpoint, nil, http.StatusOK)
}

func doSendMessage(rng *rand.Rand) result {
	cp := rng.Intn(numCounterparts)
	body := map[string]string{"content": fmt.Sprintf("message %d", rng.Int())}
	if rng.Float64() < 0.3 {
		body["senderId"] = fmt.Sprintf("artist_%d", cp)
	}
	return send(http.MethodPost, fmt.Sprintf("/messages?counterparty=artist_%d", cp), "POST /messages", body, http.StatusCreated)
}

func doLike(rng *rand.Rand) result {
	i := rng.Intn(numArtworks)
	if rng.Float64() < 0.5 {
		return send(http.MethodPost, fmt.Sprintf("/unlike?id=art_%d", i), "POST /unlike", nil, http.StatusOK)
	}
	return send(http.MethodPost, "/like", "POST /like", artwork(i), http.StatusOK)
}

func doFollow(rng *rand.Rand) result {
	path := "/follow"
	if rng.Float64() < 0.5 {
		path = "/unfollow"
	}
	return send(http.MethodPost, fmt.Sprintf("%s?id=artist_%d", path, rng.Intn(numArtists)), "POST "+path, nil, http.StatusOK)
}

// doMarkRead picks an existing thread id from the counterparty lookup.
func doMarkRead(rng *rand.Rand) result {
	resp, err := httpClient.Get(fmt.Sprintf("%s/thread?counterparty=artist_%d", baseURL, rng.Intn(numCounterparts)))
	if err != nil {
		return result{"POST /thread/read", 0, 0, true}
	}
	var thread struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&thread)
	resp.Body.Close()
	if thread.ID == "" {
		return doGet("/threads")
	}
	return send(http.MethodPost, "/thread/read?id="+thread.ID, "POST /thread/read", nil, http.StatusNoContent)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
