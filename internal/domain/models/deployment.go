package models

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for DeploymentRecord.Timestamp
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DeploymentRecord is the snapshot written after a deployment reaches its
// confirmation depth. It is the only artifact shared between deploy and verify.
type DeploymentRecord struct {
	Network         string `json:"network" yaml:"network"`           // e.g., "base-sepolia"
	ContractName    string `json:"contractName" yaml:"contractName"` // e.g., "NotificationSystem"
	ContractAddress string `json:"contractAddress" yaml:"contractAddress"`
	Deployer        string `json:"deployer" yaml:"deployer"`
	ChainID         uint64 `json:"chainId" yaml:"chainId"`
	Timestamp       string `json:"timestamp" yaml:"timestamp"`
	BlockNumber     uint64 `json:"blockNumber" yaml:"blockNumber"`
	TransactionHash string `json:"transactionHash" yaml:"transactionHash"`
	GasUsed         string `json:"gasUsed" yaml:"gasUsed"`
	GasPrice        string `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"`
	ConstructorArgs string `json:"constructorArgs,omitempty" yaml:"constructorArgs,omitempty"` // Hex encoded
}

// FormatTimestamp renders t the way records store it
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// MissingFields returns the JSON names of required fields that are empty.
// contractName is optional; records written by other tools omit it.
func (r *DeploymentRecord) MissingFields() []string {
	var missing []string
	check := func(name string, empty bool) {
		if empty {
			missing = append(missing, name)
		}
	}

	check("network", r.Network == "")
	check("contractAddress", r.ContractAddress == "")
	check("deployer", r.Deployer == "")
	check("chainId", r.ChainID == 0)
	check("timestamp", r.Timestamp == "")
	check("blockNumber", r.BlockNumber == 0)
	check("transactionHash", r.TransactionHash == "")
	check("gasUsed", r.GasUsed == "")

	return missing
}

// Validate checks that every required field is present
func (r *DeploymentRecord) Validate() error {
	if missing := r.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ExplorerCodeURL returns the explorer page showing the verified source
func (r *DeploymentRecord) ExplorerCodeURL(browserURL string) string {
	if browserURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s#code", strings.TrimSuffix(browserURL, "/"), r.ContractAddress)
}
