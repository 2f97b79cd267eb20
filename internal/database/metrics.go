package database

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsCollector exports sql.DB pool statistics as prometheus metrics.
type StatsCollector struct {
	db *sql.DB

	open      *prometheus.Desc
	idle      *prometheus.Desc
	inUse     *prometheus.Desc
	waitedFor *prometheus.Desc
}

// NewStatsCollector creates a collector for the given pool.
func NewStatsCollector(db *sql.DB) *StatsCollector {
	return &StatsCollector{
		db:        db,
		open:      prometheus.NewDesc("resourcio_db_open_connections", "Open database connections", nil, nil),
		idle:      prometheus.NewDesc("resourcio_db_idle_connections", "Idle database connections", nil, nil),
		inUse:     prometheus.NewDesc("resourcio_db_in_use_connections", "Database connections in use", nil, nil),
		waitedFor: prometheus.NewDesc("resourcio_db_wait_count_total", "Connections waited for", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.open
	ch <- c.idle
	ch <- c.inUse
	ch <- c.waitedFor
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.db.Stats()
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, float64(stats.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stats.Idle))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(stats.InUse))
	ch <- prometheus.MustNewConstMetric(c.waitedFor, prometheus.CounterValue, float64(stats.WaitCount))
}
