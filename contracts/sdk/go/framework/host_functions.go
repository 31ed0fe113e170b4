//go:build tinygo || wasip1

package framework

// 宿主函数原始声明，由执行引擎的 env 模块提供
//
// 返回值 >= 0 表示成功，< 0 时取反为错误码。

//go:wasmimport env set_return_data
func setReturnData(ptr uint32, size uint32) int64

//go:wasmimport env msg
func msg(ptr uint32, size uint32)

//go:wasmimport env db_init
func dbInit(cidPtr uint32, namePtr uint32, nameLen uint32) int64

//go:wasmimport env db_lookup
func dbLookup(cidPtr uint32, namePtr uint32, nameLen uint32) int64

//go:wasmimport env db_get
func dbGet(handle uint32, keyPtr uint32, keyLen uint32, outPtr uint32, outCap uint32) int64

//go:wasmimport env db_contains_key
func dbContainsKey(handle uint32, keyPtr uint32, keyLen uint32) int64

//go:wasmimport env db_set
func dbSet(handle uint32, keyPtr uint32, keyLen uint32, valPtr uint32, valLen uint32) int64

//go:wasmimport env db_del
func dbDel(handle uint32, keyPtr uint32, keyLen uint32) int64
