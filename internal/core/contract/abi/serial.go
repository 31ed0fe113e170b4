package abi

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/btcsuite/btcd/wire"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// 线格式约定：
//   - 定长整数小端
//   - 长度前缀使用 compact-size VarInt（wire 包会拒绝非规范编码）
//   - 域元素 32 字节大端规范表示
//   - 公钥 33 字节压缩格式
const (
	// protocolVersion 传给 wire 的协议版本，对 VarInt 编码无影响
	protocolVersion uint32 = 0

	// MaxPayloadSize 单个入口载荷的长度上限
	MaxPayloadSize = wire.MaxMessagePayload

	// FieldElementSize 域元素编码长度
	FieldElementSize = fr.Bytes

	// PubKeySize 压缩公钥编码长度
	PubKeySize = secp256k1.PubKeyBytesLenCompressed
)

// Encoder 顺序写入线格式；首个错误之后的写入全部忽略
type Encoder struct {
	buf bytes.Buffer
	err error
}

// NewEncoder 创建编码器
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// WriteU8 写入单字节
func (e *Encoder) WriteU8(v uint8) {
	if e.err != nil {
		return
	}
	e.buf.WriteByte(v)
}

// WriteU32 写入小端 u32
func (e *Encoder) WriteU32(v uint32) {
	if e.err != nil {
		return
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

// WriteVarInt 写入 VarInt
func (e *Encoder) WriteVarInt(v uint64) {
	if e.err != nil {
		return
	}
	if err := wire.WriteVarInt(&e.buf, protocolVersion, v); err != nil {
		e.fail(err)
	}
}

// WriteVarBytes 写入带长度前缀的字节串
func (e *Encoder) WriteVarBytes(b []byte) {
	if e.err != nil {
		return
	}
	if err := wire.WriteVarBytes(&e.buf, protocolVersion, b); err != nil {
		e.fail(err)
	}
}

// WriteVarString 写入带长度前缀的 UTF-8 字符串
func (e *Encoder) WriteVarString(s string) {
	if e.err != nil {
		return
	}
	if err := wire.WriteVarString(&e.buf, protocolVersion, s); err != nil {
		e.fail(err)
	}
}

// WriteFieldElement 写入域元素
func (e *Encoder) WriteFieldElement(v *fr.Element) {
	if e.err != nil {
		return
	}
	b := v.Bytes()
	e.buf.Write(b[:])
}

// WritePubKey 写入压缩公钥
func (e *Encoder) WritePubKey(pk *secp256k1.PublicKey) {
	if e.err != nil {
		return
	}
	if pk == nil {
		e.fail(NewError(Internal, "公钥为空"))
		return
	}
	e.buf.Write(pk.SerializeCompressed())
}

// WriteRaw 原样追加字节
func (e *Encoder) WriteRaw(b []byte) {
	if e.err != nil {
		return
	}
	e.buf.Write(b)
}

// Bytes 返回已编码字节
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

// Decoder 顺序读取线格式；所有失败都归为 Malformed
type Decoder struct {
	r *bytes.Reader
}

// NewDecoder 创建解码器
func NewDecoder(b []byte) *Decoder {
	return &Decoder{r: bytes.NewReader(b)}
}

// Remaining 剩余未读字节数
func (d *Decoder) Remaining() int {
	return d.r.Len()
}

func malformed(field string, err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return WrapError(Malformed, err, "读取"+field+"失败")
}

// ReadU8 读取单字节
func (d *Decoder) ReadU8(field string) (uint8, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, malformed(field, err)
	}
	return b, nil
}

// ReadU32 读取小端 u32
func (d *Decoder) ReadU32(field string) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, malformed(field, err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadVarInt 读取 VarInt
func (d *Decoder) ReadVarInt(field string) (uint64, error) {
	v, err := wire.ReadVarInt(d.r, protocolVersion)
	if err != nil {
		return 0, malformed(field, err)
	}
	return v, nil
}

// ReadCount 读取序列长度，并确认剩余字节至少能容纳 n 个最小长度为 minElemSize 的元素
func (d *Decoder) ReadCount(field string, minElemSize int) (int, error) {
	n, err := d.ReadVarInt(field)
	if err != nil {
		return 0, err
	}
	if minElemSize < 1 {
		minElemSize = 1
	}
	if n > uint64(d.r.Len()/minElemSize) {
		return 0, NewError(Malformed, "%s长度超出剩余载荷: %d", field, n)
	}
	return int(n), nil
}

// ReadVarBytes 读取带长度前缀的字节串；空串返回非 nil 的空切片
func (d *Decoder) ReadVarBytes(field string) ([]byte, error) {
	b, err := wire.ReadVarBytes(d.r, protocolVersion, uint32(d.r.Len()), field)
	if err != nil {
		return nil, malformed(field, err)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

// ReadVarString 读取带长度前缀的 UTF-8 字符串
func (d *Decoder) ReadVarString(field string) (string, error) {
	b, err := d.ReadVarBytes(field)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", NewError(Malformed, "%s不是合法的UTF-8", field)
	}
	return string(b), nil
}

// ReadFieldElement 读取域元素，拒绝非规范表示
func (d *Decoder) ReadFieldElement(field string) (fr.Element, error) {
	var e fr.Element
	var b [FieldElementSize]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return e, malformed(field, err)
	}
	if err := e.SetBytesCanonical(b[:]); err != nil {
		return e, malformed(field, err)
	}
	return e, nil
}

// ReadPubKey 读取压缩公钥
func (d *Decoder) ReadPubKey(field string) (*secp256k1.PublicKey, error) {
	var b [PubKeySize]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return nil, malformed(field, err)
	}
	pk, err := secp256k1.ParsePubKey(b[:])
	if err != nil {
		return nil, malformed(field, err)
	}
	return pk, nil
}

// ReadRaw 读取定长原始字节
func (d *Decoder) ReadRaw(field string, n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := io.ReadFull(d.r, out); err != nil {
		return nil, malformed(field, err)
	}
	return out, nil
}

// Rest 读出剩余全部字节（非 nil）
func (d *Decoder) Rest() []byte {
	out := make([]byte, d.r.Len())
	_, _ = io.ReadFull(d.r, out)
	return out
}

// Finish 确认载荷已被完整消费
func (d *Decoder) Finish() error {
	if n := d.r.Len(); n != 0 {
		return NewError(Malformed, "载荷末尾存在 %d 个多余字节", n)
	}
	return nil
}

// checkSize 入口载荷总长度检查
func checkSize(b []byte) error {
	if len(b) > MaxPayloadSize {
		return NewError(Malformed, "载荷过大: %d > %d", len(b), MaxPayloadSize)
	}
	return nil
}
