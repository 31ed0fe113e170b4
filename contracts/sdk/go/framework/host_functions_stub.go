//go:build !tinygo && !wasip1

package framework

// 非 WASM 环境下的宿主函数占位，使 go build ./... 与单元测试可以在宿主上运行。
// 返回数据与消息记录在 Stub 中；数据库不可用。

// Stub 占位宿主记录的输出
var Stub struct {
	ReturnData []byte
	Returned   bool
	Messages   []string
}

// ResetStub 清空占位宿主的记录
func ResetStub() {
	Stub.ReturnData = nil
	Stub.Returned = false
	Stub.Messages = nil
}

const stubUnavailable = -4

func setReturnData(ptr uint32, size uint32) int64 {
	if Stub.Returned {
		return stubUnavailable
	}
	Stub.Returned = true
	Stub.ReturnData = append([]byte{}, Bytes(ptr, size)...)
	return 0
}

func msg(ptr uint32, size uint32) {
	Stub.Messages = append(Stub.Messages, string(Bytes(ptr, size)))
}

func dbInit(uint32, uint32, uint32) int64 { return stubUnavailable }

func dbLookup(uint32, uint32, uint32) int64 { return stubUnavailable }

func dbGet(uint32, uint32, uint32, uint32, uint32) int64 { return stubUnavailable }

func dbContainsKey(uint32, uint32, uint32) int64 { return stubUnavailable }

func dbSet(uint32, uint32, uint32, uint32, uint32) int64 { return stubUnavailable }

func dbDel(uint32, uint32, uint32) int64 { return stubUnavailable }
