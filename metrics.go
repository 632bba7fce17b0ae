package authkeep

import "sync/atomic"

// MetricID identifies one engine counter.
type MetricID uint16

const (
	// MetricRegisterSuccess counts successful registrations.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterConflict counts registrations rejected for a taken email.
	MetricRegisterConflict
	// MetricLoginSuccess counts logins that issued a standard token directly.
	MetricLoginSuccess
	// MetricLoginFailure counts rejected credentials.
	MetricLoginFailure
	// MetricTwoFactorIssued counts challenges created and sent.
	MetricTwoFactorIssued
	// MetricTwoFactorSuccess counts verified challenges.
	MetricTwoFactorSuccess
	// MetricTwoFactorFailure counts rejected challenge attempts.
	MetricTwoFactorFailure
	// MetricElevateSuccess counts elevated tokens issued.
	MetricElevateSuccess
	// MetricElevateFailure counts rejected elevation attempts.
	MetricElevateFailure
	// MetricVerifySuccess counts token verifications that returned claims.
	MetricVerifySuccess
	// MetricVerifyFailure counts rejected token verifications.
	MetricVerifyFailure
	// MetricTokenRevoked counts tokens banned.
	MetricTokenRevoked
	// MetricLogout counts completed logouts.
	MetricLogout
	// MetricPasswordChange counts completed password changes.
	MetricPasswordChange
	// MetricAccountDeleted counts completed account deletions.
	MetricAccountDeleted

	metricCount
)

// Metrics is a fixed table of lock-free counters. A nil *Metrics is a valid
// no-op receiver.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

// NewMetrics returns a counter table, or nil when disabled.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	return &Metrics{}
}

// Inc adds one to the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot copies every counter into a map.
func (m *Metrics) Snapshot() map[MetricID]uint64 {
	out := make(map[MetricID]uint64, metricCount)
	if m == nil {
		return out
	}
	for id := MetricID(0); id < metricCount; id++ {
		out[id] = m.counters[id].Load()
	}
	return out
}
