package framework

import "unsafe"

// pinned 持有已分配的缓冲区，防止在宿主读取前被回收
var pinned = map[uint32][]byte{}

func ptrOf(b []byte) uint32 {
	return uint32(uintptr(unsafe.Pointer(&b[0])))
}

// Alloc 分配 size 字节并返回其在线性内存中的地址
func Alloc(size uint32) uint32 {
	buf := make([]byte, max(size, 1))
	ptr := ptrOf(buf)
	pinned[ptr] = buf
	return ptr
}

// AllocBytes 复制 data 到新分配的缓冲区
func AllocBytes(data []byte) (uint32, uint32) {
	ptr := Alloc(uint32(len(data)))
	copy(pinned[ptr], data)
	return ptr, uint32(len(data))
}

// Bytes 返回 [ptr, ptr+size) 的内存视图
func Bytes(ptr uint32, size uint32) []byte {
	if size == 0 {
		return []byte{}
	}
	if buf, ok := pinned[ptr]; ok && uint32(len(buf)) >= size {
		return buf[:size]
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), size)
}

// Release 释放全部已分配缓冲区；每个入口返回前调用
func Release() {
	clear(pinned)
}
