package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/hellocontract/internal/app"
	"github.com/weisyn/hellocontract/internal/core/host"
)

// deployFlags 部署参数
type deployFlags struct {
	cid      string
	native   string
	wasmFile string
	initHex  string
}

var deployArgs deployFlags

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "部署合约并执行 init",
	Long: `部署原生合约 (--native) 或 WASM 字节码 (--wasm)。

未指定 --cid 时随机生成合约标识。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := startApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Stop() }()

		view, err := deployArgs.deploy(cmd.Context(), a)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), view)
	},
}

// deploy 按标志部署合约
func (f deployFlags) deploy(ctx context.Context, a app.App) (deployView, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cid, err := parseCID(f.cid)
	if err != nil {
		return deployView{}, err
	}
	var initPayload []byte
	if f.initHex != "" {
		if initPayload, err = parseHex(f.initHex); err != nil {
			return deployView{}, err
		}
	}

	if f.wasmFile != "" {
		code, err := os.ReadFile(f.wasmFile)
		if err != nil {
			return deployView{}, fmt.Errorf("读取WASM文件失败: %w", err)
		}
		if err := a.Registry().DeployWASM(ctx, cid, code, initPayload); err != nil {
			return deployView{}, err
		}
		return deployView{ContractID: cid.String(), Kind: host.KindWASM.String(), CodeSize: len(code)}, nil
	}

	name := f.native
	if name == "" {
		name = host.NativeHello
	}
	if err := a.Registry().DeployNative(ctx, cid, name, initPayload); err != nil {
		return deployView{}, err
	}
	return deployView{ContractID: cid.String(), Kind: host.KindNative.String(), Name: name}, nil
}

func bindDeployFlags(cmd *cobra.Command, f *deployFlags) {
	cmd.Flags().StringVar(&f.cid, "cid", "", "合约标识 (base58，默认随机)")
	cmd.Flags().StringVar(&f.native, "native", "", "原生合约名称 (默认 hello)")
	cmd.Flags().StringVar(&f.wasmFile, "wasm", "", "WASM字节码文件")
	cmd.Flags().StringVar(&f.initHex, "init", "", "init 载荷 (十六进制)")
	cmd.MarkFlagsMutuallyExclusive("native", "wasm")
}

func init() {
	bindDeployFlags(deployCmd, &deployArgs)
}
