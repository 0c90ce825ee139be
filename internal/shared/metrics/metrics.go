package metrics

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var llmBucketsMS = []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000}

var (
	llmCalls    = newCounterVec("llm_calls_total", "Total LLM gateway calls", "provider")
	llmFailures = newCounterVec("llm_failures_total", "LLM calls degraded to a failure notice", "provider")
	exports     = newCounterVec("exports_total", "Reports rendered and stored", "format")
	llmLatency  = newHistogramVec("llm_call_duration_ms", "LLM call duration in milliseconds", "provider", llmBucketsMS)
)

// IncLLMCall counts a gateway round trip, whether or not it succeeded.
func IncLLMCall(provider string) { llmCalls.inc(provider) }

// IncLLMFailure counts a provider failure that was degraded into a notice.
func IncLLMFailure(provider string) { llmFailures.inc(provider) }

// IncExport counts a stored report.
func IncExport(format string) { exports.inc(format) }

func ObserveLLMDuration(provider string, d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	llmLatency.observe(provider, max(ms, 0))
}

// Handler serves every series in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

func Render() string {
	var b strings.Builder
	llmCalls.write(&b)
	llmFailures.write(&b)
	exports.write(&b)
	llmLatency.write(&b)
	return b.String()
}

type counterVec struct {
	name, help, label string

	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec(name, help, label string) *counterVec {
	return &counterVec{name: name, help: help, label: label, values: map[string]uint64{}}
}

func (v *counterVec) inc(labelValue string) {
	v.mu.Lock()
	v.values[labelValue]++
	v.mu.Unlock()
}

func (v *counterVec) write(b *strings.Builder) {
	v.mu.Lock()
	defer v.mu.Unlock()
	writeHeader(b, v.name, v.help, "counter")
	if len(v.values) == 0 {
		// an empty family still advertises itself with a zero sample
		b.WriteString(v.name + " 0\n")
		return
	}
	for _, lv := range sortedKeys(v.values) {
		b.WriteString(v.name + labels(v.label, lv, "") + " " + strconv.FormatUint(v.values[lv], 10) + "\n")
	}
}

type histogram struct {
	perBucket []uint64
	sum       float64
	count     uint64
}

type histogramVec struct {
	name, help, label string
	bounds            []float64

	mu     sync.Mutex
	series map[string]*histogram
}

func newHistogramVec(name, help, label string, bounds []float64) *histogramVec {
	return &histogramVec{name: name, help: help, label: label, bounds: bounds, series: map[string]*histogram{}}
}

func (v *histogramVec) observe(labelValue string, value float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	h, ok := v.series[labelValue]
	if !ok {
		h = &histogram{perBucket: make([]uint64, len(v.bounds))}
		v.series[labelValue] = h
	}
	h.count++
	h.sum += value
	if i := sort.SearchFloat64s(v.bounds, value); i < len(v.bounds) {
		h.perBucket[i]++
	}
}

func (v *histogramVec) write(b *strings.Builder) {
	v.mu.Lock()
	defer v.mu.Unlock()
	writeHeader(b, v.name, v.help, "histogram")
	for _, lv := range sortedKeys(v.series) {
		h := v.series[lv]
		var running uint64
		for i, bound := range v.bounds {
			running += h.perBucket[i]
			b.WriteString(v.name + "_bucket" + labels(v.label, lv, formatBound(bound)) + " " + strconv.FormatUint(running, 10) + "\n")
		}
		b.WriteString(v.name + "_bucket" + labels(v.label, lv, "+Inf") + " " + strconv.FormatUint(h.count, 10) + "\n")
		b.WriteString(v.name + "_sum" + labels(v.label, lv, "") + " " + formatBound(h.sum) + "\n")
		b.WriteString(v.name + "_count" + labels(v.label, lv, "") + " " + strconv.FormatUint(h.count, 10) + "\n")
	}
}

func writeHeader(b *strings.Builder, name, help, kind string) {
	b.WriteString("# HELP " + name + " " + help + "\n")
	b.WriteString("# TYPE " + name + " " + kind + "\n")
}

// labels renders {label="value",le="bound"}; le is omitted when empty.
func labels(label, value, le string) string {
	parts := []string{label + "=" + strconv.Quote(value)}
	if le != "" {
		parts = append(parts, "le="+strconv.Quote(le))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
