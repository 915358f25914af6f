package devbitmap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordRead is called after each Read/ReadAt.
	// bits is the number of bits requested.
	RecordRead(bits uint64, duration time.Duration, err error)

	// RecordWrite is called after each WriteRange/Set/Clear/SetAt/ClearAt.
	RecordWrite(bits uint64, duration time.Duration, err error)

	// RecordScan is called after each All/Find/Search/Count/Collect.
	// matches is the number of indices found (or counted).
	RecordScan(bits uint64, matches int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRead(uint64, time.Duration, error)      {}
func (NoopMetricsCollector) RecordWrite(uint64, time.Duration, error)     {}
func (NoopMetricsCollector) RecordScan(uint64, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReadCount       atomic.Int64
	ReadErrors      atomic.Int64
	ReadBits        atomic.Int64
	ReadTotalNanos  atomic.Int64
	WriteCount      atomic.Int64
	WriteErrors     atomic.Int64
	WriteBits       atomic.Int64
	WriteTotalNanos atomic.Int64
	ScanCount       atomic.Int64
	ScanErrors      atomic.Int64
	ScanBits        atomic.Int64
	ScanMatches     atomic.Int64
	ScanTotalNanos  atomic.Int64
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(bits uint64, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadBits.Add(int64(bits))
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
	}
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(bits uint64, duration time.Duration, err error) {
	b.WriteCount.Add(1)
	b.WriteBits.Add(int64(bits))
	b.WriteTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteErrors.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(bits uint64, matches int, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.ScanBits.Add(int64(bits))
	b.ScanMatches.Add(int64(matches))
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReadCount:     b.ReadCount.Load(),
		ReadErrors:    b.ReadErrors.Load(),
		ReadBits:      b.ReadBits.Load(),
		ReadAvgNanos:  avg(b.ReadTotalNanos.Load(), b.ReadCount.Load()),
		WriteCount:    b.WriteCount.Load(),
		WriteErrors:   b.WriteErrors.Load(),
		WriteBits:     b.WriteBits.Load(),
		WriteAvgNanos: avg(b.WriteTotalNanos.Load(), b.WriteCount.Load()),
		ScanCount:     b.ScanCount.Load(),
		ScanErrors:    b.ScanErrors.Load(),
		ScanBits:      b.ScanBits.Load(),
		ScanMatches:   b.ScanMatches.Load(),
		ScanAvgNanos:  avg(b.ScanTotalNanos.Load(), b.ScanCount.Load()),
	}
}

// Reset clears all counters.
func (b *BasicMetricsCollector) Reset() {
	for _, c := range []*atomic.Int64{
		&b.ReadCount, &b.ReadErrors, &b.ReadBits, &b.ReadTotalNanos,
		&b.WriteCount, &b.WriteErrors, &b.WriteBits, &b.WriteTotalNanos,
		&b.ScanCount, &b.ScanErrors, &b.ScanBits, &b.ScanMatches, &b.ScanTotalNanos,
	} {
		c.Store(0)
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	ReadCount     int64
	ReadErrors    int64
	ReadBits      int64
	ReadAvgNanos  int64
	WriteCount    int64
	WriteErrors   int64
	WriteBits     int64
	WriteAvgNanos int64
	ScanCount     int64
	ScanErrors    int64
	ScanBits      int64
	ScanMatches   int64
	ScanAvgNanos  int64
}
