// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

var (
	shiftJIS = japanese.ShiftJIS
	utf16LE  = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
)

// byteReader is the minimal surface the null-terminated readers need;
// both sliceByteReader (below) and a plain bytes.Reader satisfy it.
type byteReader interface {
	ReadByte() (byte, error)
}

// ReadNullTerminatedShiftJIS consumes bytes from r until a single zero
// byte terminator, then decodes the accumulated bytes as Shift-JIS. It
// fails with ErrUnterminatedString if r runs out first, or
// ErrDecodingFailed if the bytes are not valid Shift-JIS.
func ReadNullTerminatedShiftJIS(r byteReader) (string, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", ErrUnterminatedString
		}
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	decoded, err := shiftJIS.NewDecoder().Bytes(buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodingFailed, err)
	}
	return string(decoded), nil
}

// ReadNullTerminatedUTF16 consumes 2-byte units from r until a 0x0000
// terminator, then decodes the accumulated bytes as UTF-16LE. It fails
// with ErrUnterminatedString if r runs out first, or ErrDecodingFailed
// if the bytes are not valid UTF-16.
func ReadNullTerminatedUTF16(r byteReader) (string, error) {
	var buf []byte
	for {
		lo, err1 := r.ReadByte()
		hi, err2 := r.ReadByte()
		if err1 != nil || err2 != nil {
			return "", ErrUnterminatedString
		}
		if lo == 0 && hi == 0 {
			break
		}
		buf = append(buf, lo, hi)
	}
	decoded, err := utf16LE.NewDecoder().Bytes(buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodingFailed, err)
	}
	return string(decoded), nil
}

// EncodeShiftJIS encodes a string as Shift-JIS without appending a
// terminator. It fails with ErrEncodingFailed if the string contains a
// code point Shift-JIS cannot represent.
func EncodeShiftJIS(s string) ([]byte, error) {
	encoded, err := shiftJIS.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrEncodingFailed, s, err)
	}
	return []byte(encoded), nil
}

// EncodeUTF16 encodes a string as UTF-16LE without appending a
// terminator.
func EncodeUTF16(s string) ([]byte, error) {
	encoded, err := utf16LE.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrEncodingFailed, s, err)
	}
	return []byte(encoded), nil
}

// readShiftJISAt reads a null-terminated shift-jis string directly out
// of a byte slice at the given offset, returning the string and the
// offset of the byte just past its terminator. Used by FromBytes, which
// needs to read strings out of the raw file buffer before a Store
// exists to read them through.
func readShiftJISAt(buf []byte, offset int) (string, int, error) {
	end := offset
	for {
		if end >= len(buf) {
			return "", 0, ErrUnterminatedString
		}
		if buf[end] == 0 {
			break
		}
		end++
	}
	decoded, err := shiftJIS.NewDecoder().Bytes(buf[offset:end])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrDecodingFailed, err)
	}
	return string(decoded), end + 1, nil
}

var _ io.ByteReader = (*sliceByteReader)(nil)

// sliceByteReader adapts a byte slice + cursor to io.ByteReader without
// pulling in bytes.Reader's wider API, matching the narrow surface the
// original encoded-string readers consume.
type sliceByteReader struct {
	buf []byte
	pos int
}

func (r *sliceByteReader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}
