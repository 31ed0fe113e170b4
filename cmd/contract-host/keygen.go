package main

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/spf13/cobra"
)

var keygenCount int

// keyView 密钥对的输出形式
type keyView struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "生成 secp256k1 密钥对 (压缩公钥)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if keygenCount < 1 {
			return fmt.Errorf("--count 至少为 1")
		}
		keys := make([]keyView, 0, keygenCount)
		for i := 0; i < keygenCount; i++ {
			priv, err := secp256k1.GeneratePrivateKey()
			if err != nil {
				return fmt.Errorf("生成私钥失败: %w", err)
			}
			keys = append(keys, keyView{
				PrivateKey: hex.EncodeToString(priv.Serialize()),
				PublicKey:  hex.EncodeToString(priv.PubKey().SerializeCompressed()),
			})
		}
		return printJSON(cmd.OutOrStdout(), keys)
	},
}

func init() {
	keygenCmd.Flags().IntVar(&keygenCount, "count", 1, "生成数量")
}
