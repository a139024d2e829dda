// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import (
	"bytes"
	"testing"
)

func TestStoreScalarAccessors(t *testing.T) {
	s := NewStore(LittleEndian)
	if err := s.AllocateAtEnd(16); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}

	if err := s.WriteU32(0, 0xCAFEBABE); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	got, err := s.ReadU32(0)
	if err != nil || got != 0xCAFEBABE {
		t.Errorf("ReadU32 got %#x, %v", got, err)
	}

	if err := s.WriteI16(4, -7); err != nil {
		t.Fatalf("WriteI16: %v", err)
	}
	gotI16, err := s.ReadI16(4)
	if err != nil || gotI16 != -7 {
		t.Errorf("ReadI16 got %d, %v", gotI16, err)
	}

	if err := s.WriteF32(8, 1.25); err != nil {
		t.Fatalf("WriteF32: %v", err)
	}
	gotF, err := s.ReadF32(8)
	if err != nil || gotF != 1.25 {
		t.Errorf("ReadF32 got %v, %v", gotF, err)
	}

	if _, err := s.ReadU32(6); err == nil {
		t.Error("expected alignment error reading u32 at an unaligned address")
	}
	if _, err := s.ReadU8(16); err == nil {
		t.Error("expected out-of-bounds error reading past the data section")
	}
}

func TestStoreSerializeRoundTrip(t *testing.T) {
	s := NewStore(LittleEndian)
	if err := s.AllocateAtEnd(20); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}
	if err := s.WriteU32(0, 100); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := s.WritePointer(4, 8); err != nil {
		t.Fatalf("WritePointer: %v", err)
	}
	if err := s.WriteLabel(8, "Entry"); err != nil {
		t.Fatalf("WriteLabel: %v", err)
	}
	if err := s.WriteString(12, "hello"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := s.WriteCString(16, "inline"); err != nil {
		t.Fatalf("WriteCString: %v", err)
	}

	bytes1, err := s.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	s2, err := FromBytes(bytes1, LittleEndian)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	// The decoded data section also holds the bytes Serialize appended
	// for the staged C-string: "inline" plus its terminator, padded to 8.
	if s2.Size() != 28 {
		t.Errorf("got size %d, want 28", s2.Size())
	}
	if v, err := s2.ReadU32(0); err != nil || v != 100 {
		t.Errorf("ReadU32(0) = %d, %v", v, err)
	}
	if v, err := s2.ReadPointer(4); err != nil || v != 8 {
		t.Errorf("ReadPointer(4) = %d, %v", v, err)
	}
	if labels := s2.ReadLabels(8); len(labels) != 1 || labels[0] != "Entry" {
		t.Errorf("ReadLabels(8) = %v", labels)
	}
	if v, err := s2.ReadString(12); err != nil || v != "hello" {
		t.Errorf("ReadString(12) = %q, %v", v, err)
	}
	if v, err := s2.ReadPointer(16); err != nil {
		t.Errorf("ReadPointer(16) (resolved c-string) failed: %v", err)
	} else if v < 20 {
		t.Errorf("c-string pointer %d should resolve past the original 20 bytes of data", v)
	}

	bytes2, err := s2.Serialize()
	if err != nil {
		t.Fatalf("Serialize (second pass): %v", err)
	}
	if !bytes.Equal(bytes1, bytes2) {
		t.Error("serialize is not idempotent across a decode/encode round trip")
	}
}

func TestStoreLabelOrderingByEndian(t *testing.T) {
	build := func(endian Endian) []byte {
		s := NewStore(endian)
		if err := s.AllocateAtEnd(8); err != nil {
			t.Fatalf("AllocateAtEnd: %v", err)
		}
		if err := s.WriteLabel(4, "Zebra"); err != nil {
			t.Fatalf("WriteLabel: %v", err)
		}
		if err := s.WriteLabel(0, "Apple"); err != nil {
			t.Fatalf("WriteLabel: %v", err)
		}
		out, err := s.Serialize()
		if err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		return out
	}

	little := build(LittleEndian)
	big := build(BigEndian)

	// little-endian archives sort labels by address, so "Apple" (at 0)
	// precedes "Zebra" (at 4) in the label table.
	s, err := FromBytes(little, LittleEndian)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	all := s.AllLabels()
	if len(all) != 2 || all[0].Name != "Apple" || all[1].Name != "Zebra" {
		t.Errorf("got %v", all)
	}

	// big-endian archives sort labels by name instead; re-decode and
	// confirm both are still present regardless of on-disk order.
	s2, err := FromBytes(big, BigEndian)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	all2 := s2.AllLabels()
	if len(all2) != 2 || all2[0].Name != "Apple" || all2[1].Name != "Zebra" {
		t.Errorf("got %v", all2)
	}
}

func TestStoreAllocateShiftsPointersAndLabels(t *testing.T) {
	s := NewStore(LittleEndian)
	if err := s.AllocateAtEnd(8); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}
	if err := s.WritePointer(0, 4); err != nil {
		t.Fatalf("WritePointer: %v", err)
	}
	if err := s.WriteLabel(4, "Target"); err != nil {
		t.Fatalf("WriteLabel: %v", err)
	}

	if err := s.Allocate(4, 4, true); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if s.Size() != 12 {
		t.Fatalf("got size %d, want 12", s.Size())
	}
	dst, err := s.ReadPointer(0)
	if err != nil {
		t.Fatalf("ReadPointer(0): %v", err)
	}
	if dst != 8 {
		t.Errorf("pointer destination got %d, want 8 (shifted past insertion)", dst)
	}
	if labels := s.ReadLabels(8); len(labels) != 1 || labels[0] != "Target" {
		t.Errorf("ReadLabels(8) = %v, want [Target]", labels)
	}
}

func TestStoreDeallocateDropsEntriesInRange(t *testing.T) {
	s := NewStore(LittleEndian)
	if err := s.AllocateAtEnd(12); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}
	if err := s.WriteLabel(4, "Doomed"); err != nil {
		t.Fatalf("WriteLabel: %v", err)
	}
	if err := s.WriteLabel(8, "Survivor"); err != nil {
		t.Fatalf("WriteLabel: %v", err)
	}

	if err := s.Deallocate(4, 4, false); err != nil {
		t.Fatalf("Deallocate: %v", err)
	}
	if s.Size() != 8 {
		t.Fatalf("got size %d, want 8", s.Size())
	}
	if labels := s.ReadLabels(4); len(labels) != 1 || labels[0] != "Survivor" {
		t.Errorf("ReadLabels(4) = %v, want [Survivor]", labels)
	}
}

func TestAllocateAtEndDoesNotShiftExistingLabel(t *testing.T) {
	s := NewStore(LittleEndian)
	if err := s.AllocateAtEnd(4); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}
	if err := s.WriteLabel(0, "T"); err != nil {
		t.Fatalf("WriteLabel: %v", err)
	}
	if err := s.AllocateAtEnd(4); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}
	if err := s.WriteLabel(4, "U"); err != nil {
		t.Fatalf("WriteLabel: %v", err)
	}

	if labels := s.ReadLabels(0); len(labels) != 1 || labels[0] != "T" {
		t.Errorf("ReadLabels(0) = %v, want [T] (must not shift into the grown region)", labels)
	}
	if labels := s.ReadLabels(4); len(labels) != 1 || labels[0] != "U" {
		t.Errorf("ReadLabels(4) = %v, want [U]", labels)
	}
}

func TestFromBytesArchiveTooSmall(t *testing.T) {
	if _, err := FromBytes([]byte{1, 2, 3}, LittleEndian); err != ErrArchiveTooSmall {
		t.Errorf("got %v, want ErrArchiveTooSmall", err)
	}
}

func TestStoreAssertEqualRegions(t *testing.T) {
	build := func() *Store {
		s := NewStore(LittleEndian)
		if err := s.AllocateAtEnd(8); err != nil {
			t.Fatalf("AllocateAtEnd: %v", err)
		}
		if err := s.WriteU32(0, 42); err != nil {
			t.Fatalf("WriteU32: %v", err)
		}
		if err := s.WritePointer(4, 0); err != nil {
			t.Fatalf("WritePointer: %v", err)
		}
		return s
	}

	a := build()
	b := build()
	if err := a.AssertEqualRegions(b, 0, 0, 8); err != nil {
		t.Errorf("expected equal regions, got %v", err)
	}

	if err := b.WriteU32(0, 43); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := a.AssertEqualRegions(b, 0, 0, 8); err == nil {
		t.Error("expected a comparison failure after diverging a raw value")
	}
}

func TestStoreAssertEqualRegionsDifferentOffsets(t *testing.T) {
	// a's region of interest sits at address 0; the same shape has been
	// relocated to address 4 inside b, preceded by 4 bytes of unrelated
	// data. AssertEqualRegions must be able to compare across that
	// offset instead of assuming both stores align at the same address.
	a := NewStore(LittleEndian)
	if err := a.AllocateAtEnd(8); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}
	if err := a.WriteU32(0, 99); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := a.WritePointer(4, 0); err != nil {
		t.Fatalf("WritePointer: %v", err)
	}

	b := NewStore(LittleEndian)
	if err := b.AllocateAtEnd(12); err != nil {
		t.Fatalf("AllocateAtEnd: %v", err)
	}
	if err := b.WriteU32(0, 1234); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := b.WriteU32(4, 99); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := b.WritePointer(8, 4); err != nil {
		t.Fatalf("WritePointer: %v", err)
	}

	if err := a.AssertEqualRegions(b, 0, 4, 8); err != nil {
		t.Errorf("expected a[0:8] to equal b[4:12] (relocated copy), got %v", err)
	}
	if err := a.AssertEqualRegions(b, 0, 0, 8); err == nil {
		t.Error("expected a[0:8] to differ from b[0:8] (unrelated leading data)")
	}
}
