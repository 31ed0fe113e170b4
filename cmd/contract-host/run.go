package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/hellocontract/internal/core/contract/hello"
)

var (
	runDeploy  deployFlags
	runPayload string
	runCount   int
)

// runCmd 部署后立即执行 Hello 调用，默认使用内存数据库
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "部署 Hello 合约并执行 Hello 调用",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("in-memory") && !cmd.Flags().Changed("data-dir") && globalFlags.ConfigFile == "" {
			globalFlags.InMemory = true
		}
		if runCount < 1 {
			return fmt.Errorf("--count 至少为 1")
		}

		a, err := startApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Stop() }()

		deployed, err := runDeploy.deploy(cmd.Context(), a)
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), deployed); err != nil {
			return err
		}

		call := fmt.Sprintf("%s:%d", deployed.ContractID, uint8(hello.Hello))
		if runPayload != "" {
			call += ":" + runPayload
		}
		calls := make([]string, runCount)
		for i := range calls {
			calls[i] = call
		}
		tx, err := buildTransaction(calls, nil)
		if err != nil {
			return err
		}
		return runTransaction(cmd, a, tx)
	},
}

func init() {
	bindDeployFlags(runCmd, &runDeploy)
	runCmd.Flags().StringVar(&runPayload, "payload", "", "Hello 调用载荷 (十六进制)")
	runCmd.Flags().IntVar(&runCount, "count", 1, "交易内的 Hello 调用次数")
}
