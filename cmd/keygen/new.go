// cmd/keygen/new.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	usecase "narratives-solana/internal/application/usecase"
	"narratives-solana/internal/infra/solana"
)

// NewNewCmd generates a keypair. With --out the secret goes to a 0600 file
// and only the pubkey is printed; without it the base58 secret is printed.
func NewNewCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "new",
		Short: "Generate a new keypair",
		Args:  cobra.NoArgs,
		RunE:  runNew,
	}

	cmd.Flags().StringP("out", "o", "", "Write the keypair to this file as a JSON byte array")
	cmd.Flags().BoolP("force", "f", false, "Overwrite the output file if it already exists")
	return cmd
}

func runNew(cmd *cobra.Command, _ []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	force, _ := cmd.Flags().GetBool("force")

	uc := usecase.NewKeypairUsecase(solana.NewKeypairGenerator())
	kp, err := uc.Generate(cmd.Context())
	if err != nil {
		return err
	}
	defer kp.Wipe()

	out := cmd.OutOrStdout()
	if outPath == "" {
		fmt.Fprintf(out, "pubkey: %s\n", kp.PublicKeyBase58())
		fmt.Fprintf(out, "secret: %s\n", kp.SecretBase58())
		return nil
	}

	if err := solana.WriteKeypairFile(outPath, kp, force); err != nil {
		return err
	}
	fmt.Fprintf(out, "pubkey: %s\n", kp.PublicKeyBase58())
	fmt.Fprintf(out, "wrote keypair to %s\n", outPath)
	return nil
}
