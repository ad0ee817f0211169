// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"encoding/binary"
)

// arena is the CPU staging memory of one frame. Vertex space comes from
// byte blocks and index space from uint16 blocks; each block becomes one
// GPU buffer on upload. Blocks are kept across frames and only truncated.
type arena struct {
	blockSize int
	limit     int
	used      int

	vertices [][]byte
	indices  [][]uint16
}

func newArena(blockSize, limit int) *arena {
	return &arena{blockSize: blockSize, limit: limit}
}

// allocVertices reserves count vertices of stride bytes. The run starts
// at a multiple of stride so the block can be bound at offset zero and
// addressed by vertex number.
func (a *arena) allocVertices(stride, count int) (block, first int, data []byte, ok bool) {
	size := stride * count
	if stride <= 0 || count <= 0 || a.used+size > a.limit {
		return 0, 0, nil, false
	}
	block = len(a.vertices) - 1
	off := 0
	if block >= 0 {
		off = roundUp(len(a.vertices[block]), stride)
	}
	if block < 0 || off+size > cap(a.vertices[block]) {
		a.vertices = append(a.vertices, make([]byte, 0, max(a.blockSize, size)))
		block, off = len(a.vertices)-1, 0
	}
	b := a.vertices[block]
	b = b[:off+size]
	clear(b[len(a.vertices[block]):])
	a.vertices[block] = b
	a.used += size
	return block, off / stride, b[off : off+size : off+size], true
}

// allocIndices reserves count uint16 indices.
func (a *arena) allocIndices(count int) (block, first int, data []uint16, ok bool) {
	size := 2 * count
	if count <= 0 || a.used+size > a.limit {
		return 0, 0, nil, false
	}
	perBlock := max(a.blockSize/2, count)
	block = len(a.indices) - 1
	if block < 0 || len(a.indices[block])+count > cap(a.indices[block]) {
		a.indices = append(a.indices, make([]uint16, 0, perBlock))
		block = len(a.indices) - 1
	}
	b := a.indices[block]
	first = len(b)
	b = b[:first+count]
	a.indices[block] = b
	a.used += size
	return block, first, b[first : first+count : first+count], true
}

// reset truncates every block for the next frame.
func (a *arena) reset() {
	for i := range a.vertices {
		a.vertices[i] = a.vertices[i][:0]
	}
	for i := range a.indices {
		a.indices[i] = a.indices[i][:0]
	}
	a.used = 0
}

// Used returns the staged bytes.
func (a *arena) Used() int { return a.used }

// vertexBytes returns block i padded to a multiple of four bytes.
func (a *arena) vertexBytes(i int) []byte {
	b := a.vertices[i]
	if n := roundUp(len(b), 4); n != len(b) {
		b = append(b, make([]byte, n-len(b))...)
	}
	return b
}

// indexBytes returns block i as little-endian bytes padded to four bytes.
func (a *arena) indexBytes(i int) []byte {
	return uint16Bytes(a.indices[i])
}

func uint16Bytes(idx []uint16) []byte {
	out := make([]byte, roundUp(2*len(idx), 4))
	for i, v := range idx {
		binary.LittleEndian.PutUint16(out[2*i:], v)
	}
	return out
}

func uint32Bytes(idx []uint32) []byte {
	out := make([]byte, 4*len(idx))
	for i, v := range idx {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}
