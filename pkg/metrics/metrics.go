package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Metrics holds application metrics
type Metrics struct {
	mu sync.RWMutex

	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64

	EndpointRequests map[string]int64
	EndpointErrors   map[string]int64
	EndpointLatency  map[string][]time.Duration

	// Upstream calls (AI providers)
	ServiceCalls   map[string]int64
	ServiceErrors  map[string]int64
	ServiceLatency map[string][]time.Duration

	CircuitBreakerState    map[string]string
	CircuitBreakerFailures map[string]int64

	StartTime time.Time
}

var globalMetrics = &Metrics{
	EndpointRequests:       make(map[string]int64),
	EndpointErrors:         make(map[string]int64),
	EndpointLatency:        make(map[string][]time.Duration),
	ServiceCalls:           make(map[string]int64),
	ServiceErrors:          make(map[string]int64),
	ServiceLatency:         make(map[string][]time.Duration),
	CircuitBreakerState:    make(map[string]string),
	CircuitBreakerFailures: make(map[string]int64),
	StartTime:              time.Now(),
}

// RecordRequest records an API request
func RecordRequest(endpoint string, success bool, latency time.Duration) {
	globalMetrics.mu.Lock()
	defer globalMetrics.mu.Unlock()

	globalMetrics.TotalRequests++
	if success {
		globalMetrics.SuccessfulRequests++
	} else {
		globalMetrics.FailedRequests++
		globalMetrics.EndpointErrors[endpoint]++
	}

	globalMetrics.EndpointRequests[endpoint]++
	appendLatency(globalMetrics.EndpointLatency, endpoint, latency)
}

// RecordServiceCall records an upstream service call
func RecordServiceCall(service string, success bool, latency time.Duration) {
	globalMetrics.mu.Lock()
	defer globalMetrics.mu.Unlock()

	globalMetrics.ServiceCalls[service]++
	if !success {
		globalMetrics.ServiceErrors[service]++
	}
	appendLatency(globalMetrics.ServiceLatency, service, latency)
}

// UpdateCircuitBreaker updates circuit breaker metrics
func UpdateCircuitBreaker(service, state string, failures int64) {
	globalMetrics.mu.Lock()
	defer globalMetrics.mu.Unlock()

	globalMetrics.CircuitBreakerState[service] = state
	globalMetrics.CircuitBreakerFailures[service] = failures
}

// Keep only the last 100 latency measurements per key.
func appendLatency(m map[string][]time.Duration, key string, latency time.Duration) {
	if len(m[key]) >= 100 {
		m[key] = m[key][1:]
	}
	m[key] = append(m[key], latency)
}

// GetMetrics returns current metrics
func GetMetrics() map[string]interface{} {
	globalMetrics.mu.RLock()
	defer globalMetrics.mu.RUnlock()

	uptime := time.Since(globalMetrics.StartTime)

	return map[string]interface{}{
		"uptime_seconds": uptime.Seconds(),
		"requests": map[string]interface{}{
			"total":      globalMetrics.TotalRequests,
			"successful": globalMetrics.SuccessfulRequests,
			"failed":     globalMetrics.FailedRequests,
		},
		"endpoints": map[string]interface{}{
			"requests":            copyCounts(globalMetrics.EndpointRequests),
			"errors":              copyCounts(globalMetrics.EndpointErrors),
			"latency_avg_seconds": avgLatencies(globalMetrics.EndpointLatency),
		},
		"services": map[string]interface{}{
			"calls":               copyCounts(globalMetrics.ServiceCalls),
			"errors":              copyCounts(globalMetrics.ServiceErrors),
			"latency_avg_seconds": avgLatencies(globalMetrics.ServiceLatency),
		},
		"circuit_breakers": map[string]interface{}{
			"state":    copyStates(globalMetrics.CircuitBreakerState),
			"failures": copyCounts(globalMetrics.CircuitBreakerFailures),
		},
	}
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyStates(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func avgLatencies(m map[string][]time.Duration) map[string]float64 {
	out := make(map[string]float64, len(m))
	for key, latencies := range m {
		if len(latencies) == 0 {
			continue
		}
		var sum time.Duration
		for _, l := range latencies {
			sum += l
		}
		out[key] = sum.Seconds() / float64(len(latencies))
	}
	return out
}

// GetPrometheusMetrics returns metrics in Prometheus text format
func GetPrometheusMetrics() string {
	metrics := GetMetrics()
	var b strings.Builder

	b.WriteString("# HELP api_uptime_seconds API uptime in seconds\n")
	b.WriteString("# TYPE api_uptime_seconds gauge\n")
	fmt.Fprintf(&b, "api_uptime_seconds %.2f\n", metrics["uptime_seconds"].(float64))

	reqs := metrics["requests"].(map[string]interface{})
	b.WriteString("# HELP api_requests_total Total number of requests\n")
	b.WriteString("# TYPE api_requests_total counter\n")
	fmt.Fprintf(&b, "api_requests_total{status=\"total\"} %d\n", reqs["total"].(int64))
	fmt.Fprintf(&b, "api_requests_total{status=\"successful\"} %d\n", reqs["successful"].(int64))
	fmt.Fprintf(&b, "api_requests_total{status=\"failed\"} %d\n", reqs["failed"].(int64))

	endpoints := metrics["endpoints"].(map[string]interface{})
	b.WriteString("# HELP api_endpoint_requests_total Total requests per endpoint\n")
	b.WriteString("# TYPE api_endpoint_requests_total counter\n")
	writeCounter(&b, "api_endpoint_requests_total", "endpoint", endpoints["requests"].(map[string]int64))

	b.WriteString("# HELP api_endpoint_errors_total Total errors per endpoint\n")
	b.WriteString("# TYPE api_endpoint_errors_total counter\n")
	writeCounter(&b, "api_endpoint_errors_total", "endpoint", endpoints["errors"].(map[string]int64))

	services := metrics["services"].(map[string]interface{})
	b.WriteString("# HELP api_service_calls_total Total calls per upstream service\n")
	b.WriteString("# TYPE api_service_calls_total counter\n")
	writeCounter(&b, "api_service_calls_total", "service", services["calls"].(map[string]int64))

	return b.String()
}

func writeCounter(b *strings.Builder, name, label string, counts map[string]int64) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s{%s=%q} %d\n", name, label, k, counts[k])
	}
}
