// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import (
	"bytes"
	"testing"
)

func TestLegacyArcBundleRoundTrip(t *testing.T) {
	bundle := NewLegacyArcBundle()
	bundle.Set("map01.bin", bytes.Repeat([]byte{0xAB}, 40))
	bundle.Set("map02.bin", []byte("tiny"))

	data, err := bundle.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if len(data)%legacyArcPaddingBound != 0 {
		t.Errorf("got serialized length %d, want a multiple of %d", len(data), legacyArcPaddingBound)
	}

	decoded, err := LegacyArcFromBytes(data)
	if err != nil {
		t.Fatalf("LegacyArcFromBytes: %v", err)
	}

	keys := decoded.Keys()
	if len(keys) != 2 || keys[0] != "map01.bin" || keys[1] != "map02.bin" {
		t.Errorf("got keys %v, want insertion order preserved", keys)
	}

	got, ok := decoded.Get("map01.bin")
	if !ok || !bytes.Equal(got, bytes.Repeat([]byte{0xAB}, 40)) {
		t.Errorf("got map01.bin contents %v, ok=%v", got, ok)
	}
	got2, ok := decoded.Get("map02.bin")
	if !ok || string(got2) != "tiny" {
		t.Errorf("got map02.bin contents %q, ok=%v", got2, ok)
	}

	data2, err := decoded.Serialize()
	if err != nil {
		t.Fatalf("Serialize (second pass): %v", err)
	}
	if !bytes.Equal(data, data2) {
		t.Error("legacy arc serialize is not idempotent across a decode/encode round trip")
	}
}

func TestLegacyArcFromBytesBadMagic(t *testing.T) {
	raw := make([]byte, 8)
	if _, err := LegacyArcFromBytes(raw); err != ErrBadMagic {
		t.Errorf("got %v, want ErrBadMagic", err)
	}
}

func TestLegacyArcFromBytesTooSmall(t *testing.T) {
	if _, err := LegacyArcFromBytes([]byte{1, 2, 3}); err != ErrArchiveTooSmall {
		t.Errorf("got %v, want ErrArchiveTooSmall", err)
	}
}
