// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import (
	"bytes"
	"testing"
)

func TestArcFromBytes(t *testing.T) {
	s := NewStore(LittleEndian)
	if err := s.AllocateAtEnd(48); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	must(s.WriteU32(0, 1))
	must(s.WriteLabel(4, "Count"))
	must(s.WriteU32(4, 2))
	must(s.WriteLabel(8, "Info"))

	must(s.WriteString(8, "alpha.bin"))
	must(s.WriteU32(12, 0))
	must(s.WriteU32(16, 5))
	must(s.WriteU32(20, 40))

	must(s.WriteString(24, "beta.bin"))
	must(s.WriteU32(28, 1))
	must(s.WriteU32(32, 3))
	must(s.WriteU32(36, 45))

	must(s.WriteBytes(40, []byte("HELLO")))
	must(s.WriteBytes(45, []byte("BYE")))

	data, err := s.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	files, err := ArcFromBytes(data)
	if err != nil {
		t.Fatalf("ArcFromBytes: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if !bytes.Equal(files["alpha.bin"], []byte("HELLO")) {
		t.Errorf("got alpha.bin = %q", files["alpha.bin"])
	}
	if !bytes.Equal(files["beta.bin"], []byte("BYE")) {
		t.Errorf("got beta.bin = %q", files["beta.bin"])
	}
}

func TestArcFromBytesMissingCountLabel(t *testing.T) {
	s := NewStore(LittleEndian)
	if err := s.AllocateAtEnd(4); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}
	if err := s.WriteLabel(0, "Info"); err != nil {
		t.Fatalf("WriteLabel: %v", err)
	}
	data, err := s.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if _, err := ArcFromBytes(data); err != ErrNoCount {
		t.Errorf("got %v, want ErrNoCount", err)
	}
}

func TestArcFromBytesMissingInfoLabel(t *testing.T) {
	s := NewStore(LittleEndian)
	if err := s.AllocateAtEnd(4); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}
	if err := s.WriteLabel(0, "Count"); err != nil {
		t.Fatalf("WriteLabel: %v", err)
	}
	data, err := s.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if _, err := ArcFromBytes(data); err != ErrNoInfo {
		t.Errorf("got %v, want ErrNoInfo", err)
	}
}
