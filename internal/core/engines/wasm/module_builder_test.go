package wasm

// 测试用的最小 WASM 模块汇编

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func vec(items ...[]byte) []byte {
	return concat(uleb(uint32(len(items))), concat(items...))
}

func wasmName(s string) []byte {
	return concat(uleb(uint32(len(s))), []byte(s))
}

func section(id byte, body []byte) []byte {
	return concat([]byte{id}, uleb(uint32(len(body))), body)
}

func funcBody(instrs ...byte) []byte {
	body := concat([]byte{0x00}, instrs, []byte{0x0b})
	return concat(uleb(uint32(len(body))), body)
}

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

const (
	i32 = 0x7f
	i64 = 0x7e
)

// greetingModule 与原生 Hello 合约行为一致的 WASM 模块
//
//	1024: "gm world"  1032: [0x00 0x00] 空元数据  1034: [0x00] Hello 状态更新
//
// __entrypoint 返回 execCode；__update 返回载荷首字节（输入偏移 32）。
func greetingModule(execCode byte) []byte {
	types := section(0x01, vec(
		[]byte{0x60, 0x02, i32, i32, 0x00},
		[]byte{0x60, 0x02, i32, i32, 0x01, i64},
		[]byte{0x60, 0x01, i32, 0x01, i32},
	))
	imports := section(0x02, vec(
		concat(wasmName(HostModule), wasmName("msg"), []byte{0x00, 0x00}),
		concat(wasmName(HostModule), wasmName("set_return_data"), []byte{0x00, 0x01}),
	))
	functions := section(0x03, vec([]byte{0x02}, []byte{0x01}, []byte{0x01}, []byte{0x01}, []byte{0x01}))
	memory := section(0x05, vec([]byte{0x00, 0x01}))
	exports := section(0x07, vec(
		concat(wasmName(ExportMemory), []byte{0x02, 0x00}),
		concat(wasmName(ExportAlloc), []byte{0x00, 0x02}),
		concat(wasmName(ExportInitialize), []byte{0x00, 0x03}),
		concat(wasmName(ExportMetadata), []byte{0x00, 0x04}),
		concat(wasmName(ExportEntrypoint), []byte{0x00, 0x05}),
		concat(wasmName(ExportUpdate), []byte{0x00, 0x06}),
	))
	code := section(0x0a, vec(
		// alloc: i32.const 2048
		funcBody(0x41, 0x80, 0x10),
		// __initialize: i64.const 0
		funcBody(0x42, 0x00),
		// __metadata: set_return_data(1032, 2); i64.const 0
		funcBody(0x41, 0x88, 0x08, 0x41, 0x02, 0x10, 0x01, 0x1a, 0x42, 0x00),
		// __entrypoint: msg(1024, 8); set_return_data(1034, 1); i64.const execCode
		funcBody(
			0x41, 0x80, 0x08, 0x41, 0x08, 0x10, 0x00,
			0x41, 0x8a, 0x08, 0x41, 0x01, 0x10, 0x01, 0x1a,
			0x42, execCode,
		),
		// __update: i64.extend_i32_u(i32.load8_u offset=32 (ptr))
		funcBody(0x20, 0x00, 0x2d, 0x00, 0x20, 0xad),
	))
	data := section(0x0b, vec(concat(
		[]byte{0x00, 0x41, 0x80, 0x08, 0x0b},
		vec([]byte("g"), []byte("m"), []byte(" "), []byte("w"), []byte("o"), []byte("r"), []byte("l"), []byte("d"), []byte{0}, []byte{0}, []byte{0}),
	)))
	return concat(wasmHeader, types, imports, functions, memory, exports, code, data)
}

// memoryOnlyModule 只导出内存，缺少全部入口
func memoryOnlyModule() []byte {
	memory := section(0x05, vec([]byte{0x00, 0x01}))
	exports := section(0x07, vec(concat(wasmName(ExportMemory), []byte{0x02, 0x00})))
	return concat(wasmHeader, memory, exports)
}
