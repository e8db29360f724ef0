// Package config loads and manages minter configuration.
// Configuration source priority (highest to lowest):
// 1. Command-line flags (applied by the cmd layer)
// 2. Environment variables (MINTER_RPC_URL, MINTER_CHAIN_ID, ...)
// 3. Config file path passed via --config
// 4. ~/.config/minter/config.yaml
// All values are static for the lifetime of the process.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Network identifies the chain the minting contract lives on.
type Network struct {
	// ChainID is the numeric EIP-155 chain identifier the session must be
	// connected to before any write is allowed.
	ChainID uint64 `yaml:"chain_id"`
	// Name is the human-readable network name used in mismatch messages.
	Name string `yaml:"name"`
}

// String renders the network as "Name (chain <id>)" for user-facing messages.
func (n Network) String() string {
	return fmt.Sprintf("%s (chain %d)", n.Name, n.ChainID)
}

// Config holds everything the process needs to reach the wallet and the
// minting contract.
type Config struct {
	// RPCURL is the JSON-RPC endpoint of a node on the required network.
	RPCURL string `yaml:"rpc_url"`
	// Network is the required network; connections to any other chain are
	// rejected before minting is offered.
	Network Network `yaml:"network"`
	// ContractAddress is the deployed minter contract (0x-prefixed hex).
	ContractAddress string `yaml:"contract_address"`
	// KeystorePath is the encrypted key file backing the local wallet.
	KeystorePath string `yaml:"keystore_path"`
}

// Default returns the built-in configuration: Sepolia with the keystore under
// the user config directory. RPC URL and contract address have no usable
// defaults and must come from the file, environment, or flags.
func Default() *Config {
	return &Config{
		Network:      Network{ChainID: 11155111, Name: "Sepolia"},
		KeystorePath: defaultKeystorePath(),
	}
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "minter")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func defaultKeystorePath() string {
	return filepath.Join(configDir(), "keystore.json")
}

// Load reads the config file (explicit path or the default location) and then
// applies environment overrides. A missing file is not an error; the defaults
// plus environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fine, run on defaults + env
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()

	if cfg.KeystorePath == "" {
		cfg.KeystorePath = defaultKeystorePath()
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MINTER_RPC_URL"); v != "" {
		c.RPCURL = v
	}
	if v := os.Getenv("MINTER_CHAIN_ID"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Network.ChainID = id
		}
	}
	if v := os.Getenv("MINTER_NETWORK_NAME"); v != "" {
		c.Network.Name = v
	}
	if v := os.Getenv("MINTER_CONTRACT_ADDRESS"); v != "" {
		c.ContractAddress = v
	}
	if v := os.Getenv("MINTER_KEYSTORE"); v != "" {
		c.KeystorePath = v
	}
}

// Save writes the config back to the given path (or the default location),
// creating the directory if needed. Used by `minter init`-style flows and
// tests; the running session never mutates configuration.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
