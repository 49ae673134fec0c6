// Package metrics provides the Recorder interface and ready-made implementations.
package metrics

import (
	"sync/atomic"
	"time"
)

// Recorder is the interface for recording dump/load observations.
type Recorder interface {
	RecordDump(codec, compression string, bytes int64, d time.Duration)
	RecordLoad(codec, compression string, bytes int64, d time.Duration)
	RecordError(op string)
}

// Noop is a Recorder that discards all data.
type Noop struct{}

func (Noop) RecordDump(codec, compression string, bytes int64, d time.Duration) {}
func (Noop) RecordLoad(codec, compression string, bytes int64, d time.Duration) {}
func (Noop) RecordError(op string)                                              {}

// Stats is a Recorder backed by atomic counters. Safe for concurrent use.
type Stats struct {
	dumps        atomic.Int64
	loads        atomic.Int64
	errors       atomic.Int64
	bytesWritten atomic.Int64
	bytesRead    atomic.Int64
	dumpNanos    atomic.Int64
	loadNanos    atomic.Int64
}

// Snapshot is a point-in-time copy of the counters held by Stats.
type Snapshot struct {
	Dumps        int64
	Loads        int64
	Errors       int64
	BytesWritten int64
	BytesRead    int64
	DumpTime     time.Duration
	LoadTime     time.Duration
}

func (s *Stats) RecordDump(codec, compression string, bytes int64, d time.Duration) {
	s.dumps.Add(1)
	s.bytesWritten.Add(bytes)
	s.dumpNanos.Add(int64(d))
}

func (s *Stats) RecordLoad(codec, compression string, bytes int64, d time.Duration) {
	s.loads.Add(1)
	s.bytesRead.Add(bytes)
	s.loadNanos.Add(int64(d))
}

func (s *Stats) RecordError(op string) {
	s.errors.Add(1)
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Dumps:        s.dumps.Load(),
		Loads:        s.loads.Load(),
		Errors:       s.errors.Load(),
		BytesWritten: s.bytesWritten.Load(),
		BytesRead:    s.bytesRead.Load(),
		DumpTime:     time.Duration(s.dumpNanos.Load()),
		LoadTime:     time.Duration(s.loadNanos.Load()),
	}
}
