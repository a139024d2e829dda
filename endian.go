// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Endian selects the byte order a store encodes its scalar cells with.
// Every PABA store carries exactly one; the header itself is always
// written in that same order.
type Endian int

const (
	// LittleEndian is used by the newer-console archive variants.
	LittleEndian Endian = iota
	// BigEndian is used by the older-console archive variants.
	BigEndian
)

func (e Endian) order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// DecodeU16 decodes a little- or big-endian uint16 from a 2-byte slice.
func (e Endian) DecodeU16(b []byte) (uint16, error) {
	if len(b) != 2 {
		return 0, fmt.Errorf("%w: want 2 bytes, got %d", ErrConversionError, len(b))
	}
	return e.order().Uint16(b), nil
}

// DecodeI16 decodes a little- or big-endian int16 from a 2-byte slice.
func (e Endian) DecodeI16(b []byte) (int16, error) {
	v, err := e.DecodeU16(b)
	return int16(v), err
}

// DecodeU32 decodes a little- or big-endian uint32 from a 4-byte slice.
func (e Endian) DecodeU32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: want 4 bytes, got %d", ErrConversionError, len(b))
	}
	return e.order().Uint32(b), nil
}

// DecodeI32 decodes a little- or big-endian int32 from a 4-byte slice.
func (e Endian) DecodeI32(b []byte) (int32, error) {
	v, err := e.DecodeU32(b)
	return int32(v), err
}

// DecodeF32 decodes a little- or big-endian IEEE-754 float32 from a
// 4-byte slice.
func (e Endian) DecodeF32(b []byte) (float32, error) {
	v, err := e.DecodeU32(b)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// EncodeU16 encodes value in this store's byte order.
func (e Endian) EncodeU16(value uint16) []byte {
	b := make([]byte, 2)
	e.order().PutUint16(b, value)
	return b
}

// EncodeI16 encodes value in this store's byte order.
func (e Endian) EncodeI16(value int16) []byte {
	return e.EncodeU16(uint16(value))
}

// EncodeU32 encodes value in this store's byte order.
func (e Endian) EncodeU32(value uint32) []byte {
	b := make([]byte, 4)
	e.order().PutUint32(b, value)
	return b
}

// EncodeI32 encodes value in this store's byte order.
func (e Endian) EncodeI32(value int32) []byte {
	return e.EncodeU32(uint32(value))
}

// EncodeF32 encodes value in this store's byte order.
func (e Endian) EncodeF32(value float32) []byte {
	return e.EncodeU32(math.Float32bits(value))
}
