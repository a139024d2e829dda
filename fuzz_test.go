// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import "testing"

// FuzzFromBytes exercises FromBytes against arbitrary input, the native
// Go fuzzing equivalent of the teacher's corpus-based Fuzz(data []byte) int
// entry point: any panic is a bug, any error is an expected rejection.
func FuzzFromBytes(f *testing.F) {
	seed := NewStore(LittleEndian)
	if err := seed.AllocateAtEnd(8); err != nil {
		f.Fatal(err)
	}
	if err := seed.WriteLabel(0, "Seed"); err != nil {
		f.Fatal(err)
	}
	corpus, err := seed.Serialize()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(corpus)
	f.Add([]byte{})
	f.Add([]byte{0, 0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		store, err := FromBytes(data, LittleEndian)
		if err != nil {
			return
		}
		if _, err := store.Serialize(); err != nil {
			t.Errorf("Serialize failed on a store that FromBytes accepted: %v", err)
		}
	})
}
