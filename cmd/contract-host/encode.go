package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/internal/core/host"
	"github.com/weisyn/hellocontract/pkg/types"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "输出线格式编码 (十六进制)",
}

var (
	callListIdx   uint32
	callListCalls []string
)

var encodeCallListCmd = &cobra.Command{
	Use:   "calllist",
	Short: "编码入口载荷 (call_idx, calls)",
	Example: `  contract-host encode calllist --idx 0 --call 0x00
  contract-host encode calllist --idx 1 --call 0x00 --call 0x00:deadbeef`,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := types.CallList{CallIdx: callListIdx}
		for _, s := range callListCalls {
			c, err := parseLocalCall(s)
			if err != nil {
				return err
			}
			list.Calls = append(list.Calls, c)
		}
		if _, err := abi.SelectCall(list); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(abi.EncodeCallList(list)))
		return err
	},
}

var txArgs execFlags

var encodeTxCmd = &cobra.Command{
	Use:   "tx",
	Short: "编码并签名交易，输出可交给 exec --tx 的十六进制",
	RunE: func(cmd *cobra.Command, args []string) error {
		tx, err := buildTransaction(txArgs.calls, txArgs.signers)
		if err != nil {
			return err
		}
		raw, err := host.EncodeTransaction(tx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(raw))
		return err
	},
}

func init() {
	encodeCallListCmd.Flags().Uint32Var(&callListIdx, "idx", 0, "本次调用的索引")
	encodeCallListCmd.Flags().StringArrayVar(&callListCalls, "call", nil, "调用 <selector>[:<hex>]，可重复")
	bindExecFlags(encodeTxCmd, &txArgs)

	encodeCmd.AddCommand(encodeCallListCmd)
	encodeCmd.AddCommand(encodeTxCmd)
}
