// Package cmd is the minter command-line surface. The root command runs
// the interactive minting screen; subcommands cover keystore management
// and headless minting.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"minter/pkg/config"
	"minter/pkg/contract"
	"minter/pkg/keystore"
	"minter/pkg/session"
	"minter/pkg/tui"
	"minter/pkg/wallet"
)

var (
	cfgFile      string
	rpcURLFlag   string
	keystoreFlag string
	contractFlag string

	// Package-level version info, set by Execute().
	appVersion string
)

// Execute is the main entry point called from main.go.
func Execute(version string) {
	appVersion = version

	rootCmd := &cobra.Command{
		Use:   "minter",
		Short: "Mint NFTs from your terminal",
		Long: "minter drives an ERC-721 minting contract with a locally " +
			"encrypted wallet. Running it without a subcommand opens the " +
			"interactive minting screen.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.config/minter/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rpcURLFlag, "rpc-url", "", "override the JSON-RPC endpoint")
	rootCmd.PersistentFlags().StringVar(&keystoreFlag, "keystore", "", "override the keystore path")
	rootCmd.PersistentFlags().StringVar(&contractFlag, "contract", "", "override the minter contract address")

	// Subcommands
	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newMintCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("minter %s\n", appVersion)
		},
	}
}

// initConfig loads configuration, applying CLI flag overrides.
func initConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config values
	if rpcURLFlag != "" {
		cfg.RPCURL = rpcURLFlag
	}
	if keystoreFlag != "" {
		cfg.KeystorePath = keystoreFlag
	}
	if contractFlag != "" {
		cfg.ContractAddress = contractFlag
	}

	return cfg
}

func runTUI() error {
	cfg := initConfig()
	approver := tui.NewChannelApprover()
	mgr, err := buildManager(cfg, approver)
	if err != nil {
		return err
	}
	return tui.Run(mgr, approver)
}

// buildManager wires the keystore, RPC client, and contract into a
// session manager. When no wallet is detected the manager is built
// without a provider and connection attempts report that instead.
func buildManager(cfg *config.Config, approver wallet.Approver) (*session.Manager, error) {
	var (
		provider wallet.Provider
		minter   session.Minter
	)

	if err := wallet.Detect(cfg.RPCURL, cfg.KeystorePath); err == nil {
		if cfg.ContractAddress == "" {
			return nil, fmt.Errorf("no minter contract configured: set contract_address in the config or pass --contract")
		}
		store, err := keystore.Open(cfg.KeystorePath)
		if err != nil {
			return nil, fmt.Errorf("open keystore: %w", err)
		}
		// Dialing an HTTP endpoint does no network I/O yet; the first
		// RPC happens on connect.
		client, err := ethclient.Dial(cfg.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
		}
		c, err := contract.New(cfg.ContractAddress, client)
		if err != nil {
			return nil, fmt.Errorf("minter contract: %w", err)
		}
		provider = wallet.NewLocalProvider(store, client, approver)
		minter = minterAdapter{c: c}
	}

	return session.NewManager(provider, minter, cfg.Network), nil
}

// minterAdapter bridges the concrete contract client to the session's
// minter port. The explicit error check keeps a failed mint from
// surfacing as a typed-nil pending transaction.
type minterAdapter struct {
	c *contract.Client
}

func (a minterAdapter) Address() string {
	return a.c.Address()
}

func (a minterAdapter) Name(ctx context.Context) (string, error) {
	return a.c.Name(ctx)
}

func (a minterAdapter) MintTo(ctx context.Context, opts *bind.TransactOpts, to, tokenURI string) (session.PendingTx, error) {
	tx, err := a.c.MintTo(ctx, opts, to, tokenURI)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// readPassphrase reads a secret from stdin, masking the echo when stdin
// is a terminal.
func readPassphrase(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		pass, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		return pass, err
	}
	// Piped input, e.g. tests or scripts.
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// confirm asks a y/N question on stdin.
func confirm(prompt string) (bool, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
