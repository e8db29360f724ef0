package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"minter/pkg/config"
)

func TestNetworkString(t *testing.T) {
	tests := []struct {
		net  config.Network
		want string
	}{
		{config.Network{ChainID: 11155111, Name: "Sepolia"}, "Sepolia (chain 11155111)"},
		{config.Network{ChainID: 1, Name: "Mainnet"}, "Mainnet (chain 1)"},
	}

	for _, tt := range tests {
		if got := tt.net.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	if cfg.Network.ChainID != 11155111 {
		t.Errorf("ChainID = %d, want Sepolia", cfg.Network.ChainID)
	}
	if cfg.Network.Name != "Sepolia" {
		t.Errorf("Name = %q", cfg.Network.Name)
	}
	if cfg.KeystorePath == "" {
		t.Error("KeystorePath empty")
	}
	if cfg.RPCURL != "" || cfg.ContractAddress != "" {
		t.Error("RPC URL and contract address must have no defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want defaults for a missing file", err)
	}
	if cfg.Network.ChainID != 11155111 {
		t.Errorf("ChainID = %d", cfg.Network.ChainID)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`rpc_url: https://rpc.example.test
network:
  chain_id: 31337
  name: Anvil
contract_address: "0x1111111111111111111111111111111111111111"
keystore_path: /tmp/keys.json
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RPCURL != "https://rpc.example.test" {
		t.Errorf("RPCURL = %q", cfg.RPCURL)
	}
	if cfg.Network.ChainID != 31337 || cfg.Network.Name != "Anvil" {
		t.Errorf("Network = %+v", cfg.Network)
	}
	if cfg.ContractAddress != "0x1111111111111111111111111111111111111111" {
		t.Errorf("ContractAddress = %q", cfg.ContractAddress)
	}
	if cfg.KeystorePath != "/tmp/keys.json" {
		t.Errorf("KeystorePath = %q", cfg.KeystorePath)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(path); err == nil {
		t.Fatal("Load() accepted malformed YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`rpc_url: https://file.example.test
network:
  chain_id: 1
  name: Mainnet
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MINTER_RPC_URL", "https://env.example.test")
	t.Setenv("MINTER_CHAIN_ID", "11155111")
	t.Setenv("MINTER_NETWORK_NAME", "Sepolia")
	t.Setenv("MINTER_CONTRACT_ADDRESS", "0x2222222222222222222222222222222222222222")
	t.Setenv("MINTER_KEYSTORE", "/env/keystore.json")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RPCURL != "https://env.example.test" {
		t.Errorf("RPCURL = %q, env should win over the file", cfg.RPCURL)
	}
	if cfg.Network.ChainID != 11155111 || cfg.Network.Name != "Sepolia" {
		t.Errorf("Network = %+v", cfg.Network)
	}
	if cfg.ContractAddress != "0x2222222222222222222222222222222222222222" {
		t.Errorf("ContractAddress = %q", cfg.ContractAddress)
	}
	if cfg.KeystorePath != "/env/keystore.json" {
		t.Errorf("KeystorePath = %q", cfg.KeystorePath)
	}
}

func TestEnvIgnoresBadChainID(t *testing.T) {
	t.Setenv("MINTER_CHAIN_ID", "not-a-number")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Network.ChainID != 11155111 {
		t.Errorf("ChainID = %d, want the default kept", cfg.Network.ChainID)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &config.Config{
		RPCURL:          "https://rpc.example.test",
		Network:         config.Network{ChainID: 17000, Name: "Holesky"},
		ContractAddress: "0x3333333333333333333333333333333333333333",
		KeystorePath:    "/tmp/keystore.json",
	}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}
