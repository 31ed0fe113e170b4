package main

import (
	"encoding/hex"

	"github.com/weisyn/hellocontract/internal/core/host"
)

// updateView 状态更新的输出形式
type updateView struct {
	Tag     uint8  `json:"tag"`
	Payload string `json:"payload"`
}

// receiptView 执行回执的输出形式
type receiptView struct {
	ExecID   string       `json:"exec_id"`
	Updates  []updateView `json:"updates"`
	Messages []string     `json:"messages"`
	Error    string       `json:"error,omitempty"`
}

func newReceiptView(r *host.Receipt, err error) receiptView {
	v := receiptView{Updates: []updateView{}, Messages: []string{}}
	if r != nil {
		v.ExecID = r.ExecID
		for _, u := range r.Updates {
			v.Updates = append(v.Updates, updateView{Tag: u.Tag, Payload: hex.EncodeToString(u.Payload)})
		}
		v.Messages = append(v.Messages, r.Messages...)
	}
	if err != nil {
		v.Error = err.Error()
	}
	return v
}

// deployView 部署结果的输出形式
type deployView struct {
	ContractID string `json:"contract_id"`
	Kind       string `json:"kind"`
	Name       string `json:"name,omitempty"`
	CodeSize   int    `json:"code_size,omitempty"`
}
