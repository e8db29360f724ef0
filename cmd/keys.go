package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"minter/pkg/keystore"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage accounts in the local keystore",
	}
	cmd.AddCommand(newKeysNewCmd())
	cmd.AddCommand(newKeysListCmd())
	cmd.AddCommand(newKeysRmCmd())
	return cmd
}

func newKeysNewCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new account",
		Example: `  minter keys new
  minter keys new --label "deploy key"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := initConfig()

			var store *keystore.Store
			if keystore.Exists(cfg.KeystorePath) {
				s, err := keystore.Open(cfg.KeystorePath)
				if err != nil {
					return fmt.Errorf("open keystore: %w", err)
				}
				pass, err := readPassphrase("Keystore passphrase: ")
				if err != nil {
					return err
				}
				defer keystore.SecureZero(pass)
				if err := s.VerifyPassphrase(pass); err != nil {
					return err
				}
				store = s
			} else {
				pass, err := readPassphrase("Choose a keystore passphrase: ")
				if err != nil {
					return err
				}
				defer keystore.SecureZero(pass)
				if len(pass) == 0 {
					return fmt.Errorf("passphrase must not be empty")
				}

				repeat, err := readPassphrase("Repeat passphrase: ")
				if err != nil {
					return err
				}
				defer keystore.SecureZero(repeat)
				if !keystore.SecureCompare(pass, repeat) {
					return fmt.Errorf("passphrases do not match")
				}

				s, err := keystore.Create(cfg.KeystorePath, pass)
				if err != nil {
					return fmt.Errorf("create keystore: %w", err)
				}
				store = s
			}

			address, err := store.NewAccount(label)
			if err != nil {
				return fmt.Errorf("create account: %w", err)
			}

			fmt.Printf("Created account %s\n", address)
			fmt.Printf("Keystore: %s\n", store.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "optional account label")
	return cmd
}

func newKeysListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List keystore accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := initConfig()

			store, err := keystore.Open(cfg.KeystorePath)
			if errors.Is(err, keystore.ErrNotFound) {
				fmt.Printf("No keystore at %s. Create one with \"minter keys new\".\n", cfg.KeystorePath)
				return nil
			}
			if err != nil {
				return fmt.Errorf("open keystore: %w", err)
			}

			accounts := store.Accounts()
			if len(accounts) == 0 {
				fmt.Println("Keystore is empty.")
				return nil
			}

			fmt.Printf("Accounts in %s:\n", store.Path())
			for _, acct := range accounts {
				line := "  " + acct.Address
				if acct.Label != "" {
					line += fmt.Sprintf("  (%s)", acct.Label)
				}
				line += "  created " + acct.CreatedAt.Format("Jan 2, 2006")
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newKeysRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <address>",
		Short: "Remove an account from the keystore",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := initConfig()
			address := args[0]

			store, err := keystore.Open(cfg.KeystorePath)
			if errors.Is(err, keystore.ErrNotFound) {
				return fmt.Errorf("no keystore at %s", cfg.KeystorePath)
			}
			if err != nil {
				return fmt.Errorf("open keystore: %w", err)
			}

			if !yes {
				ok, err := confirm(fmt.Sprintf("Remove account %s? The sealed key cannot be recovered. [y/N]: ", address))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := store.Delete(address); err != nil {
				if errors.Is(err, keystore.ErrNoAccount) {
					return fmt.Errorf("no account %s in %s", address, store.Path())
				}
				return err
			}

			fmt.Printf("Removed account %s\n", address)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
