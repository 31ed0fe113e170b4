package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/weisyn/hellocontract/internal/core/host"
	"github.com/weisyn/hellocontract/pkg/types"
)

// parseCID 解析 base58 合约标识；为空时随机生成
func parseCID(s string) (types.ContractID, error) {
	if s == "" {
		var cid types.ContractID
		if _, err := rand.Read(cid[:]); err != nil {
			return cid, fmt.Errorf("生成合约标识失败: %w", err)
		}
		return cid, nil
	}
	return types.ContractIDFromString(s)
}

// parseHex 解析十六进制，允许 0x 前缀
func parseHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("十六进制解析失败 %q: %w", s, err)
	}
	return b, nil
}

// parseSelector 解析函数选择字节（十进制或 0x 十六进制）
func parseSelector(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("选择字节无效 %q: %w", s, err)
	}
	return uint8(v), nil
}

// parseCall 解析 <cid>:<selector>[:<hex payload>]
func parseCall(s string) (host.Call, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return host.Call{}, fmt.Errorf("调用格式应为 <cid>:<selector>[:<hex>]: %q", s)
	}
	cid, err := types.ContractIDFromString(parts[0])
	if err != nil {
		return host.Call{}, err
	}
	selector, err := parseSelector(parts[1])
	if err != nil {
		return host.Call{}, err
	}
	payload := []byte{}
	if len(parts) == 3 {
		if payload, err = parseHex(parts[2]); err != nil {
			return host.Call{}, err
		}
	}
	return host.Call{ContractID: cid, Selector: selector, Payload: payload}, nil
}

// parseLocalCall 解析 <selector>[:<hex payload>]，用于调用列表编码
func parseLocalCall(s string) (types.ContractCall, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return types.ContractCall{}, fmt.Errorf("调用格式应为 <selector>[:<hex>]: %q", s)
	}
	selector, err := parseSelector(parts[0])
	if err != nil {
		return types.ContractCall{}, err
	}
	var payload []byte
	if len(parts) == 2 {
		if payload, err = parseHex(parts[1]); err != nil {
			return types.ContractCall{}, err
		}
	}
	return types.NewContractCall(selector, payload), nil
}

// parseSigner 解析 <call index>:<hex private key>
func parseSigner(s string) (int, *secp256k1.PrivateKey, error) {
	idx, keyHex, ok := strings.Cut(s, ":")
	if !ok {
		return 0, nil, fmt.Errorf("签名格式应为 <index>:<hex key>: %q", s)
	}
	i, err := strconv.Atoi(idx)
	if err != nil {
		return 0, nil, fmt.Errorf("调用索引无效 %q: %w", idx, err)
	}
	raw, err := parseHex(keyHex)
	if err != nil {
		return 0, nil, err
	}
	if len(raw) != secp256k1.PrivKeyBytesLen {
		return 0, nil, fmt.Errorf("私钥长度无效: %d", len(raw))
	}
	return i, secp256k1.PrivKeyFromBytes(raw), nil
}

// buildTransaction 由调用与签名参数构造交易并签名
func buildTransaction(callArgs, signerArgs []string) (*host.Transaction, error) {
	if len(callArgs) == 0 {
		return nil, fmt.Errorf("至少需要一个 --call")
	}
	tx := &host.Transaction{}
	for _, s := range callArgs {
		c, err := parseCall(s)
		if err != nil {
			return nil, err
		}
		tx.Calls = append(tx.Calls, c)
	}
	for _, s := range signerArgs {
		idx, key, err := parseSigner(s)
		if err != nil {
			return nil, err
		}
		if err := tx.Sign(idx, key); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
