// Package main provides a load generator for the sorting API
package main

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/muliwe/package-sorter/internal/server"
	"github.com/muliwe/package-sorter/internal/sorting"
)

// randomPackage draws measurements spread around the sorting thresholds
func randomPackage(r *rand.Rand) sorting.Package {
	return sorting.Package{
		Width:  1 + r.Float64()*200,
		Height: 1 + r.Float64()*200,
		Length: 1 + r.Float64()*200,
		Mass:   0.1 + r.Float64()*40,
	}
}

// checkFlags rejects settings that would leave the sample pool or worker set empty
func checkFlags(samples, concurrency int) error {
	if samples < 1 {
		return errors.Newf("-samples must be at least 1, got %d", samples)
	}
	if concurrency < 1 {
		return errors.Newf("-c must be at least 1, got %d", concurrency)
	}
	return nil
}

func main() {
	url := flag.String("url", "http://localhost:8080/sort", "Target sort endpoint")
	duration := flag.Duration("duration", 10*time.Second, "Test duration")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	samples := flag.Int("samples", 1000, "Number of distinct random packages")
	seed := flag.Uint64("seed", 1, "Random seed for package generation")
	insecure := flag.Bool("insecure", false, "Skip TLS certificate verification")
	flag.Parse()

	if err := checkFlags(*samples, *concurrency); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Benchmarking %s\n", *url)
	fmt.Printf("Duration: %v, Concurrency: %d, Samples: %d\n\n", *duration, *concurrency, *samples)

	r := rand.New(rand.NewPCG(*seed, *seed))
	pool := make([][]byte, *samples)
	for i := range pool {
		body, err := json.Marshal(randomPackage(r))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		pool[i] = body
	}

	tr := &http.Transport{
		MaxIdleConns:        *concurrency * 2,
		MaxIdleConnsPerHost: *concurrency * 2,
		IdleConnTimeout:     90 * time.Second,
	}
	if *insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	client := &http.Client{
		Transport: tr,
		Timeout:   5 * time.Second,
	}

	var (
		totalRequests int64
		totalErrors   int64
		totalLatency  int64 // in microseconds
		minLatency    int64 = 1<<63 - 1
		maxLatency    int64
		stacksMu      sync.Mutex
		stacks        = map[sorting.Stack]int64{}
		wg            sync.WaitGroup
		stop          = make(chan struct{})
	)

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			next := worker
			for {
				select {
				case <-stop:
					return
				default:
				}

				body := pool[next%len(pool)]
				next += *concurrency

				start := time.Now()
				resp, err := client.Post(*url, "application/json", bytes.NewReader(body))
				latency := time.Since(start).Microseconds()
				if err != nil {
					atomic.AddInt64(&totalErrors, 1)
					continue
				}

				var out server.Response
				decodeErr := json.NewDecoder(resp.Body).Decode(&out)
				_ = resp.Body.Close()

				if resp.StatusCode != http.StatusOK || decodeErr != nil {
					atomic.AddInt64(&totalErrors, 1)
					continue
				}

				atomic.AddInt64(&totalRequests, 1)
				atomic.AddInt64(&totalLatency, latency)
				stacksMu.Lock()
				stacks[out.Stack]++
				stacksMu.Unlock()

				for {
					old := atomic.LoadInt64(&minLatency)
					if latency >= old || atomic.CompareAndSwapInt64(&minLatency, old, latency) {
						break
					}
				}
				for {
					old := atomic.LoadInt64(&maxLatency)
					if latency <= old || atomic.CompareAndSwapInt64(&maxLatency, old, latency) {
						break
					}
				}
			}
		}(i)
	}

	ticker := time.NewTicker(time.Second)
	go func() {
		elapsed := 0
		for range ticker.C {
			elapsed++
			reqs := atomic.LoadInt64(&totalRequests)
			errs := atomic.LoadInt64(&totalErrors)
			fmt.Printf("[%ds] Requests: %d, Errors: %d, RPS: %.0f\n",
				elapsed, reqs, errs, float64(reqs)/float64(elapsed))
		}
	}()

	time.Sleep(*duration)
	close(stop)
	ticker.Stop()
	wg.Wait()

	reqs := atomic.LoadInt64(&totalRequests)
	errs := atomic.LoadInt64(&totalErrors)
	latencyTotal := atomic.LoadInt64(&totalLatency)
	minLat := atomic.LoadInt64(&minLatency)
	maxLat := atomic.LoadInt64(&maxLatency)

	avgLatency := float64(0)
	if reqs > 0 {
		avgLatency = float64(latencyTotal) / float64(reqs)
	}
	rps := float64(reqs) / duration.Seconds()

	fmt.Println("\n========== RESULTS ==========")
	fmt.Printf("Total requests:  %d\n", reqs)
	fmt.Printf("Total errors:    %d\n", errs)
	fmt.Printf("Duration:        %v\n", *duration)
	fmt.Printf("Concurrency:     %d\n", *concurrency)
	fmt.Println()
	fmt.Printf("RPS:             %.2f\n", rps)
	fmt.Printf("Latency avg:     %.2f µs (%.3f ms)\n", avgLatency, avgLatency/1000)
	fmt.Printf("Latency min:     %d µs (%.3f ms)\n", minLat, float64(minLat)/1000)
	fmt.Printf("Latency max:     %d µs (%.3f ms)\n", maxLat, float64(maxLat)/1000)
	fmt.Println()
	for _, s := range []sorting.Stack{sorting.StackStandard, sorting.StackSpecial, sorting.StackRejected} {
		fmt.Printf("%-16s %d\n", s.String()+":", stacks[s])
	}

	if errs > 0 {
		os.Exit(1)
	}
}
