package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/hellocontract/configs"
	"github.com/weisyn/hellocontract/internal/app"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile string // 配置文件
	Env        string // 未指定配置文件时使用的嵌入配置
	DataDir    string // 数据目录
	InMemory   bool   // 内存数据库
}

var globalFlags GlobalFlags

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "contract-host",
	Short: "合约宿主命令行工具",
	Long: `contract-host - 本地合约宿主

在 BadgerDB 合约数据库上:
  deploy   部署原生或 WASM 合约并执行 init
  exec     执行一笔交易 (metadata -> 验证 -> exec -> apply)
  encode   输出调用列表或交易的线格式编码
  keygen   生成 secp256k1 签名密钥`,
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", "", "JSON配置文件")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Env, "env", configs.EnvDevelopment, "嵌入配置环境: development|testing")
	rootCmd.PersistentFlags().StringVar(&globalFlags.DataDir, "data-dir", "", "数据目录 (覆盖配置)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.InMemory, "in-memory", false, "使用内存数据库")

	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(keygenCmd)
}

// startApp 按全局标志启动宿主应用
func startApp() (app.App, error) {
	var opts []app.Option
	if globalFlags.ConfigFile != "" {
		opts = append(opts, app.WithConfigFile(globalFlags.ConfigFile))
	} else {
		data, err := configs.Get(globalFlags.Env)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithEmbeddedConfig(data))
	}
	if globalFlags.DataDir != "" {
		opts = append(opts, app.WithDataDir(globalFlags.DataDir))
	}
	if globalFlags.InMemory {
		opts = append(opts, app.WithInMemoryStorage())
	}
	return app.Start(opts...)
}

// printJSON 以缩进 JSON 输出结果
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
