package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/weisyn/hellocontract/internal/app"
	"github.com/weisyn/hellocontract/internal/core/host"
)

// execFlags 交易参数
type execFlags struct {
	calls   []string
	signers []string
	txHex   string
}

var execArgs execFlags

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "执行一笔交易",
	Long: `执行一笔交易并输出回执。

交易可以由 --call/--sign 构造，也可以用 --tx 直接给出编码:
  contract-host exec --call <cid>:0x00 --sign 0:<hex key>
  contract-host exec --tx <hex>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tx, err := execArgs.transaction()
		if err != nil {
			return err
		}

		a, err := startApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Stop() }()

		return runTransaction(cmd, a, tx)
	},
}

// transaction 由标志得到待执行交易
func (f execFlags) transaction() (*host.Transaction, error) {
	if f.txHex != "" {
		raw, err := parseHex(f.txHex)
		if err != nil {
			return nil, err
		}
		return host.DecodeTransaction(raw)
	}
	return buildTransaction(f.calls, f.signers)
}

// runTransaction 执行交易并输出回执；被拒绝时回执与错误一并返回
func runTransaction(cmd *cobra.Command, a app.App, tx *host.Transaction) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	receipt, execErr := a.Executor().Execute(ctx, tx)
	if err := printJSON(cmd.OutOrStdout(), newReceiptView(receipt, execErr)); err != nil {
		return err
	}
	return execErr
}

func bindExecFlags(cmd *cobra.Command, f *execFlags) {
	cmd.Flags().StringArrayVar(&f.calls, "call", nil, "调用 <cid>:<selector>[:<hex>]，可重复")
	cmd.Flags().StringArrayVar(&f.signers, "sign", nil, "签名 <call index>:<hex private key>，可重复")
}

func init() {
	bindExecFlags(execCmd, &execArgs)
	execCmd.Flags().StringVar(&execArgs.txHex, "tx", "", "已编码交易 (十六进制)")
	execCmd.MarkFlagsMutuallyExclusive("tx", "call")
}
