// cmd/keygen/inspect.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"narratives-solana/internal/infra/solana"
)

// NewInspectCmd prints the public key of a keypair file. The private half
// is checked for consistency and never printed.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the public key of a keypair file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := solana.ReadKeypairFile(args[0])
			if err != nil {
				return err
			}
			defer kp.Wipe()

			fmt.Fprintf(cmd.OutOrStdout(), "pubkey: %s\n", kp.PublicKeyBase58())
			return nil
		},
	}
}
