package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"marketplace-ledger-service/internal/ledger"
)

// policyFile mirrors the YAML layout:
//
//	overwrite:
//	  accounts: allow
//	  jobs: reject
//	  nfts: reject
//	selfSignedAccounts: true
//	singleRelease: false
type policyFile struct {
	Overwrite struct {
		Accounts string `yaml:"accounts"`
		Jobs     string `yaml:"jobs"`
		NFTs     string `yaml:"nfts"`
	} `yaml:"overwrite"`
	SelfSignedAccounts *bool `yaml:"selfSignedAccounts"`
	SingleRelease      *bool `yaml:"singleRelease"`
}

// LoadPolicy reads the ledger policy from path. Missing keys keep the
// defaults; an empty path returns ledger.DefaultPolicy.
func LoadPolicy(path string) (ledger.Policy, error) {
	if path == "" {
		return ledger.DefaultPolicy(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return ledger.Policy{}, fmt.Errorf("open policy file: %w", err)
	}
	defer f.Close()
	return ParsePolicy(f)
}

func ParsePolicy(r io.Reader) (ledger.Policy, error) {
	policy := ledger.DefaultPolicy()

	var raw policyFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return ledger.Policy{}, fmt.Errorf("decode policy: %w", err)
	}

	var err error
	if policy.Accounts, err = ledger.ParseOverwritePolicy(raw.Overwrite.Accounts); err != nil {
		return ledger.Policy{}, fmt.Errorf("overwrite.accounts: %w", err)
	}
	if policy.Jobs, err = ledger.ParseOverwritePolicy(raw.Overwrite.Jobs); err != nil {
		return ledger.Policy{}, fmt.Errorf("overwrite.jobs: %w", err)
	}
	if policy.NFTs, err = ledger.ParseOverwritePolicy(raw.Overwrite.NFTs); err != nil {
		return ledger.Policy{}, fmt.Errorf("overwrite.nfts: %w", err)
	}
	if raw.SelfSignedAccounts != nil {
		policy.SelfSignedAccounts = *raw.SelfSignedAccounts
	}
	if raw.SingleRelease != nil {
		policy.SingleRelease = *raw.SingleRelease
	}
	return policy, nil
}
