package vm

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"github.com/holiman/uint256"
)

// Memory is the byte addressable scratch space of the interpreter.
// It only grows, in whole words, after the gas for growing has been paid.
type Memory struct {
	store []byte
}

func newMemory() *Memory {
	return &Memory{}
}

// Len returns the memory size in bytes.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the memory content.
func (m *Memory) Data() []byte {
	return m.store
}

// resize grows the memory to size bytes.
func (m *Memory) resize(size uint64) {
	if uint64(m.Len()) < size {
		m.store = append(m.store, make([]byte, size-uint64(m.Len()))...)
	}
}

// set copies value into memory at offset.
func (m *Memory) set(offset, size uint64, value []byte) {
	if size > 0 {
		copy(m.store[offset:offset+size], value)
	}
}

// set32 writes a word at offset.
func (m *Memory) set32(offset uint64, val *uint256.Int) {
	b32 := val.Bytes32()
	copy(m.store[offset:offset+32], b32[:])
}

// getCopy returns a copy of the given range.
func (m *Memory) getCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	cpy := make([]byte, size)
	copy(cpy, m.store[offset:offset+size])
	return cpy
}

// getPtr returns a slice sharing the memory of the given range.
func (m *Memory) getPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}
