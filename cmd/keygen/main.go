// cmd/keygen/main.go
//
// Solana 互換 keypair を生成・検査する小さなツールです。
// 生成した秘密鍵は solana-keygen と同じ JSON 配列形式で保存できます。
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:           "keygen",
		Short:         "Solana keypair tool",
		Long:          "Generate and inspect Solana ed25519 keypairs (solana-keygen compatible files)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewNewCmd())
	rootCmd.AddCommand(NewInspectCmd())
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}
