// Package secbuf provides short-lived buffers for secret material.
//
// Buffers are allocated through memguard and are guaranteed to be
// wiped when released, which makes them safe to hand to defer on every
// exit path. Plain byte slices that held secrets can be zeroed with
// Wipe.
package secbuf

import (
	"github.com/awnumar/memguard"
)

// Buffer holds secret bytes that are wiped on release.
type Buffer struct {
	lb *memguard.LockedBuffer
}

// New allocates a mutable buffer of the given size. Panics if size is
// not positive, as there is no valid use for an empty secret buffer.
func New(size int) *Buffer {
	lb := memguard.NewBuffer(size)
	lb.Melt()
	return &Buffer{lb: lb}
}

// Bytes returns the buffer contents for reading and writing. The
// returned slice must not be retained past Release.
func (b *Buffer) Bytes() []byte {
	return b.lb.Bytes()
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int {
	return b.lb.Size()
}

// Release wipes the buffer and returns its memory. The buffer must not
// be used afterwards. Releasing twice is a no-op.
func (b *Buffer) Release() {
	b.lb.Destroy()
}

// Wipe zeroes the given byte slice.
func Wipe(data []byte) {
	memguard.WipeBytes(data)
}

// Purge wipes all live secure buffers. Meant to be called once during
// shutdown - all existing Buffers are invalid afterwards.
func Purge() {
	memguard.Purge()
}
