package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"minter/pkg/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactive configuration wizard",
		Long:  "Guides you through setting up minter: RPC endpoint, network, and contract address, then saves the config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	reader := bufio.NewReader(os.Stdin)
	cfg := config.Default()

	fmt.Println("Welcome to the minter configuration wizard!")
	fmt.Println()

	fmt.Print("JSON-RPC endpoint (e.g. https://sepolia.infura.io/v3/<key>): ")
	rpcURL, _ := reader.ReadString('\n')
	cfg.RPCURL = strings.TrimSpace(rpcURL)
	if cfg.RPCURL == "" {
		return fmt.Errorf("RPC endpoint cannot be empty")
	}

	fmt.Printf("Chain ID [%d]: ", cfg.Network.ChainID)
	chainInput, _ := reader.ReadString('\n')
	if chainInput = strings.TrimSpace(chainInput); chainInput != "" {
		id, err := strconv.ParseUint(chainInput, 10, 64)
		if err != nil {
			return fmt.Errorf("chain id must be a number: %w", err)
		}
		cfg.Network.ChainID = id
	}

	fmt.Printf("Network name [%s]: ", cfg.Network.Name)
	nameInput, _ := reader.ReadString('\n')
	if nameInput = strings.TrimSpace(nameInput); nameInput != "" {
		cfg.Network.Name = nameInput
	}

	fmt.Print("Minter contract address (blank to set later): ")
	contractInput, _ := reader.ReadString('\n')
	cfg.ContractAddress = strings.TrimSpace(contractInput)

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("\nConfig file already exists at %s\n", path)
		ok, err := confirm("Overwrite? [y/N]: ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("\nConfig saved to %s\n", path)
	fmt.Println("Create an account with: minter keys new")
	return nil
}
