// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import (
	"fmt"
	"log"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Logger is the minimal logging surface threaded through Open
// and OpenBytes, mirroring the teacher's own small logging shim (File
// carries a *log.Helper in saferwall/pe).
type Logger interface {
	Printf(format string, v ...interface{})
}

type stdLogger struct{}

func (stdLogger) Printf(format string, v ...interface{}) { log.Printf(format, v...) }

var defaultLogger Logger = stdLogger{}

// Options tunes Open/OpenBytes. A nil *Options behaves like the zero
// value: the standard-library-backed default logger, no warning hook.
type Options struct {
	// Logger receives a line whenever Open/OpenBytes notices something
	// worth a warning (an empty file, empty input). Defaults to a
	// Logger backed by the standard library's log package.
	Logger Logger
	// OnWarning, when set, is additionally called with the same
	// message Logger receives, for callers that want to collect
	// warnings programmatically rather than just log them.
	OnWarning func(msg string)
}

func (o *Options) logger() Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return defaultLogger
}

func (o *Options) warn(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	o.logger().Printf("%s", msg)
	if o != nil && o.OnWarning != nil {
		o.OnWarning(msg)
	}
}

// Open memory-maps path and returns an owned copy of its bytes, ready
// to hand to FromBytes or one of the higher-level archive decoders. The
// file is mapped read-only and unmapped before returning; a Store must
// own the buffer it mutates, so the mapping itself can't be handed back
// directly. opts may be nil to use the defaults.
func Open(path string, opts *Options) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("paba: opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("paba: stating %s: %w", path, err)
	}
	if info.Size() == 0 {
		opts.warn("paba: %s is empty", path)
		return []byte{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("paba: mapping %s: %w", path, err)
	}
	defer m.Unmap()

	buf := make([]byte, len(m))
	copy(buf, m)
	return buf, nil
}

// OpenBytes applies the same warning bookkeeping Open performs to
// already-in-memory data, for callers that obtained archive bytes some
// other way (e.g. pulled out of a bigger container) but still want
// Options' warning hook applied uniformly. opts may be nil.
func OpenBytes(data []byte, opts *Options) []byte {
	if len(data) == 0 {
		opts.warn("paba: input data is empty")
	}
	return data
}
