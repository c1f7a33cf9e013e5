// Package metrics 提供流水线的Prometheus指标
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 持有服务的全部Prometheus指标
type Metrics struct {
	// HTTP请求指标
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// 流水线各阶段指标
	PageSearchesTotal     *prometheus.CounterVec
	PageExtractionsTotal  *prometheus.CounterVec
	TopicsExtractedTotal  prometheus.Counter
	QAPairsExtractedTotal prometheus.Counter

	// 卡片生成与发布指标
	CardsGeneratedTotal prometheus.Counter
	LLMRequestDuration  prometheus.Histogram
	NotesPublishedTotal prometheus.Counter
	NotesRejectedTotal  prometheus.Counter
	SyncFailuresTotal   prometheus.Counter

	// 服务指标
	ServerUptimeSeconds prometheus.Gauge
	ServerStartTime     time.Time
}

// NewMetrics 创建并注册全部指标
// 注册表由调用方传入：主程序用默认注册表，测试用独立注册表避免重复注册
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		ServerStartTime: time.Now(),
	}

	// HTTP请求指标
	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notionanki_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notionanki_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.HTTPRequestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "notionanki_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// 流水线各阶段指标
	m.PageSearchesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notionanki_page_searches_total",
			Help: "Total number of page searches",
		},
		[]string{"status"},
	)

	m.PageExtractionsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notionanki_page_extractions_total",
			Help: "Total number of page content extractions",
		},
		[]string{"status"},
	)

	m.TopicsExtractedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "notionanki_topics_extracted_total",
			Help: "Total number of topics extracted from pages",
		},
	)

	m.QAPairsExtractedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "notionanki_qa_pairs_extracted_total",
			Help: "Total number of question-answer pairs extracted from pages",
		},
	)

	// 卡片生成与发布指标
	m.CardsGeneratedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "notionanki_cards_generated_total",
			Help: "Total number of flashcards generated by the completion service",
		},
	)

	m.LLMRequestDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notionanki_llm_request_duration_seconds",
			Help:    "Duration of completion service calls in seconds",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	m.NotesPublishedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "notionanki_notes_published_total",
			Help: "Total number of notes successfully added to Anki",
		},
	)

	m.NotesRejectedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "notionanki_notes_rejected_total",
			Help: "Total number of notes rejected by Anki as duplicates or invalid",
		},
	)

	m.SyncFailuresTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "notionanki_sync_failures_total",
			Help: "Total number of best-effort Anki sync failures",
		},
	)

	// 服务指标
	m.ServerUptimeSeconds = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "notionanki_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
	)

	go m.updateUptime()

	return m
}

// updateUptime 周期刷新运行时长指标
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.ServerUptimeSeconds.Set(time.Since(m.ServerStartTime).Seconds())
	}
}

// RecordHTTPRequest 记录一次HTTP请求
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPageSearch 记录一次页面搜索及其结果
func (m *Metrics) RecordPageSearch(status string) {
	m.PageSearchesTotal.WithLabelValues(status).Inc()
}

// RecordExtraction 记录一次内容提取及其产出规模
func (m *Metrics) RecordExtraction(status string, topics, pairs int) {
	m.PageExtractionsTotal.WithLabelValues(status).Inc()
	m.TopicsExtractedTotal.Add(float64(topics))
	m.QAPairsExtractedTotal.Add(float64(pairs))
}

// RecordGeneration 记录一次卡片生成调用
func (m *Metrics) RecordGeneration(cards int, duration time.Duration) {
	m.CardsGeneratedTotal.Add(float64(cards))
	m.LLMRequestDuration.Observe(duration.Seconds())
}

// RecordPublish 记录一次批量发布的逐条结果
func (m *Metrics) RecordPublish(added, rejected int) {
	m.NotesPublishedTotal.Add(float64(added))
	m.NotesRejectedTotal.Add(float64(rejected))
}

// RecordSyncFailure 记录一次尽力而为的同步失败
func (m *Metrics) RecordSyncFailure() {
	m.SyncFailuresTotal.Inc()
}
