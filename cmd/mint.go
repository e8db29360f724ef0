package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"minter/pkg/session"
	"minter/pkg/wallet"
)

func newMintCmd() *cobra.Command {
	var (
		to       string
		tokenURI string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a token without the interactive screen",
		Example: `  minter mint --to 0xabc...def --uri ipfs://Qm.../1.json
  minter mint --to 0xabc...def --uri ipfs://Qm.../1.json --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := initConfig()

			approver := &terminalApprover{autoApprove: yes}
			mgr, err := buildManager(cfg, approver)
			if err != nil {
				return err
			}

			ctx := context.Background()

			if err := mgr.Connect(ctx); err != nil {
				return err
			}
			snap := mgr.Snapshot()
			fmt.Printf("Connected: %s on chain %d\n", snap.WalletAddress, snap.NetworkID)

			if verr := session.ValidateNetwork(snap.NetworkID, mgr.Network()); verr != nil {
				return verr
			}

			mgr.FetchCollectionName(ctx)
			if name := mgr.Snapshot().CollectionName; name != session.PlaceholderCollectionName {
				fmt.Printf("Collection: %s\n", name)
			}

			ticket, err := mgr.SubmitMint(ctx, to, tokenURI)
			if err != nil {
				return err
			}
			fmt.Printf("Transaction %s submitted, awaiting confirmation...\n", ticket.Hash())

			if err := mgr.AwaitMint(ctx, ticket); err != nil {
				return err
			}
			fmt.Printf("Minted! Transaction %s confirmed.\n", ticket.Hash())
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient address (0x-prefixed)")
	cmd.Flags().StringVar(&tokenURI, "uri", "", "token metadata URI")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip connection and signing confirmations")

	return cmd
}

// terminalApprover answers wallet prompts on stdin for headless runs.
type terminalApprover struct {
	autoApprove bool
}

func (a *terminalApprover) ApproveConnection(ctx context.Context, address string) (bool, error) {
	if a.autoApprove {
		return true, nil
	}
	return confirm(fmt.Sprintf("Connect account %s? [y/N]: ", address))
}

func (a *terminalApprover) ApproveTransaction(ctx context.Context, tx wallet.TxSummary) (bool, error) {
	fmt.Println("Transaction to sign:")
	fmt.Printf("  From:      %s\n", tx.From)
	fmt.Printf("  Contract:  %s\n", tx.To)
	fmt.Printf("  Method:    %s\n", tx.Method)
	fmt.Printf("  Recipient: %s\n", tx.Recipient)
	fmt.Printf("  Token URI: %s\n", tx.TokenURI)
	if a.autoApprove {
		return true, nil
	}
	return confirm("Sign this transaction? [y/N]: ")
}

func (a *terminalApprover) Passphrase(ctx context.Context, address string) ([]byte, error) {
	return readPassphrase(fmt.Sprintf("Passphrase for %s: ", address))
}
