package soft

import "fmt"

// heapBase 之前的区域保留给结果指针（8）等固定偏移
const heapBase uint32 = 1024

const allocAlign uint32 = 8

// allocator bump 分配器
//
// 只统计存活分配数；全部释放后回卷到 heapBase。
// 执行桥每次调用结束都会释放全部临时分配，因此堆不会无限增长。
type allocator struct {
	mem  *Memory
	next uint32
	live int
}

func newAllocator(mem *Memory) *allocator {
	return &allocator{mem: mem, next: heapBase}
}

func (a *allocator) malloc(size uint32) (uint32, error) {
	ptr := alignUp(a.next, allocAlign)
	end := uint64(ptr) + uint64(size)
	if end > uint64(a.mem.Size()) {
		need := end - uint64(a.mem.Size())
		pages := uint32((need + PageSize - 1) / PageSize)
		if _, err := a.mem.Grow(pages); err != nil {
			return 0, fmt.Errorf("malloc %d bytes: %w", size, err)
		}
	}
	a.next = uint32(end)
	a.live++
	return ptr, nil
}

func (a *allocator) free(ptr, size uint32) {
	if a.live == 0 {
		return
	}
	a.live--
	if a.live == 0 {
		a.next = heapBase
		return
	}
	// 释放的是最近一次分配时直接回退
	if alignUp(ptr, allocAlign) == ptr && ptr+size == a.next {
		a.next = ptr
	}
}

func alignUp(v, align uint32) uint32 {
	return (v + align - 1) &^ (align - 1)
}
