// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

// Reader is a sequential cursor over a Store's data section. Every
// typed Read advances the cursor by that value's width; callers that
// need random access should use the Store's address-based accessors
// directly.
type Reader struct {
	store    *Store
	position int
}

// NewReader returns a Reader positioned at the start of store.
func NewReader(store *Store) *Reader {
	return &Reader{store: store}
}

// Tell returns the cursor's current position.
func (r *Reader) Tell() int { return r.position }

// Seek moves the cursor to an absolute position.
func (r *Reader) Seek(position int) { r.position = position }

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) { r.position += n }

// Store returns the store this reader is positioned over.
func (r *Reader) Store() *Store { return r.store }

func (r *Reader) ReadU8() (uint8, error) {
	v, err := r.store.ReadU8(r.position)
	if err != nil {
		return 0, err
	}
	r.position++
	return v, nil
}

func (r *Reader) ReadI8() (int8, error) {
	v, err := r.store.ReadI8(r.position)
	if err != nil {
		return 0, err
	}
	r.position++
	return v, nil
}

func (r *Reader) ReadU16() (uint16, error) {
	v, err := r.store.ReadU16(r.position)
	if err != nil {
		return 0, err
	}
	r.position += 2
	return v, nil
}

func (r *Reader) ReadI16() (int16, error) {
	v, err := r.store.ReadI16(r.position)
	if err != nil {
		return 0, err
	}
	r.position += 2
	return v, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	v, err := r.store.ReadU32(r.position)
	if err != nil {
		return 0, err
	}
	r.position += 4
	return v, nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.store.ReadI32(r.position)
	if err != nil {
		return 0, err
	}
	r.position += 4
	return v, nil
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.store.ReadF32(r.position)
	if err != nil {
		return 0, err
	}
	r.position += 4
	return v, nil
}

// ReadBytes reads size bytes and advances the cursor past them.
func (r *Reader) ReadBytes(size int) ([]byte, error) {
	v, err := r.store.ReadBytes(r.position, size)
	if err != nil {
		return nil, err
	}
	r.position += size
	return v, nil
}

// ReadString reads the string-pointer cell at the cursor and advances
// past it.
func (r *Reader) ReadString() (string, error) {
	v, err := r.store.ReadString(r.position)
	if err != nil {
		return "", err
	}
	r.position += 4
	return v, nil
}

// ReadOptionalString reads the optional string-pointer cell at the
// cursor and advances past it.
func (r *Reader) ReadOptionalString() (*string, error) {
	v, err := r.store.ReadOptionalString(r.position)
	if err != nil {
		return nil, err
	}
	r.position += 4
	return v, nil
}

// ReadPointer reads the structural pointer cell at the cursor and
// advances past it.
func (r *Reader) ReadPointer() (int, error) {
	v, err := r.store.ReadPointer(r.position)
	if err != nil {
		return 0, err
	}
	r.position += 4
	return v, nil
}

// ReadLabels returns every label attached to the cursor's current
// position without advancing it; labels don't occupy a cell of their
// own, they annotate the cell the cursor is about to read.
func (r *Reader) ReadLabels() []string {
	return r.store.ReadLabels(r.position)
}

// ReadLabel returns the index'th label attached to the cursor's current
// position without advancing it.
func (r *Reader) ReadLabel(index int) (string, error) {
	return r.store.ReadLabel(r.position, index)
}

// Writer is a sequential cursor over a mutable Store.
type Writer struct {
	store    *Store
	position int
}

// NewWriter returns a Writer positioned at the start of store.
func NewWriter(store *Store) *Writer {
	return &Writer{store: store}
}

// Tell returns the cursor's current position.
func (w *Writer) Tell() int { return w.position }

// Seek moves the cursor to an absolute position.
func (w *Writer) Seek(position int) { w.position = position }

// Skip advances the cursor by n bytes.
func (w *Writer) Skip(n int) { w.position += n }

// Store returns the store this writer is positioned over.
func (w *Writer) Store() *Store { return w.store }

// Allocate grows the store by amount bytes at the cursor. When the
// cursor sits at the end of the data section this simply extends it;
// otherwise it inserts amount bytes at the cursor, rewriting every
// pointer, label, and text entry past that point.
func (w *Writer) Allocate(amount int) error {
	if w.position == w.store.Size() {
		return w.store.AllocateAtEnd(amount)
	}
	return w.store.Allocate(w.position, amount, false)
}

func (w *Writer) WriteU8(value uint8) error {
	if err := w.store.WriteU8(w.position, value); err != nil {
		return err
	}
	w.position++
	return nil
}

func (w *Writer) WriteI8(value int8) error {
	if err := w.store.WriteI8(w.position, value); err != nil {
		return err
	}
	w.position++
	return nil
}

func (w *Writer) WriteU16(value uint16) error {
	if err := w.store.WriteU16(w.position, value); err != nil {
		return err
	}
	w.position += 2
	return nil
}

func (w *Writer) WriteI16(value int16) error {
	if err := w.store.WriteI16(w.position, value); err != nil {
		return err
	}
	w.position += 2
	return nil
}

func (w *Writer) WriteU32(value uint32) error {
	if err := w.store.WriteU32(w.position, value); err != nil {
		return err
	}
	w.position += 4
	return nil
}

func (w *Writer) WriteI32(value int32) error {
	if err := w.store.WriteI32(w.position, value); err != nil {
		return err
	}
	w.position += 4
	return nil
}

func (w *Writer) WriteF32(value float32) error {
	if err := w.store.WriteF32(w.position, value); err != nil {
		return err
	}
	w.position += 4
	return nil
}

// WriteBytes writes value at the cursor and advances past it.
func (w *Writer) WriteBytes(value []byte) error {
	if err := w.store.WriteBytes(w.position, value); err != nil {
		return err
	}
	w.position += len(value)
	return nil
}

// WriteString stages value as the string-pointer cell at the cursor and
// advances past it.
func (w *Writer) WriteString(value string) error {
	if err := w.store.WriteString(w.position, value); err != nil {
		return err
	}
	w.position += 4
	return nil
}

// WriteOptionalString stages value, if non-nil, as the string-pointer
// cell at the cursor and advances past it either way.
func (w *Writer) WriteOptionalString(value *string) error {
	if err := w.store.WriteOptionalString(w.position, value); err != nil {
		return err
	}
	w.position += 4
	return nil
}

// WritePointer marks the cell at the cursor as a structural pointer to
// destination and advances past it.
func (w *Writer) WritePointer(destination int) error {
	if err := w.store.WritePointer(w.position, destination); err != nil {
		return err
	}
	w.position += 4
	return nil
}

// WriteCString stages value as an inline C-string pointer at the
// cursor and advances past it.
func (w *Writer) WriteCString(value string) error {
	if err := w.store.WriteCString(w.position, value); err != nil {
		return err
	}
	w.position += 4
	return nil
}

// WriteLabel attaches a label to the cursor's current position without
// advancing it.
func (w *Writer) WriteLabel(name string) error {
	return w.store.WriteLabel(w.position, name)
}
