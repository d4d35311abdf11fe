package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Contract represents a compiled contract discovered in the artifacts directory
type Contract struct {
	Name          string    `json:"name"`
	SourceName    string    `json:"sourceName"` // e.g., "contracts/NotificationSystem.sol"
	ArtifactPath  string    `json:"artifactPath"`
	BuildInfoPath string    `json:"buildInfoPath,omitempty"`
	Artifact      *Artifact `json:"artifact,omitempty"`
}

// FullyQualifiedName returns "sourceName:contractName" as explorers expect it
func (c *Contract) FullyQualifiedName() string {
	if c.SourceName == "" {
		return c.Name
	}
	return fmt.Sprintf("%s:%s", c.SourceName, c.Name)
}

// Bytecode holds creation or runtime bytecode. Hardhat stores it as a hex
// string, Foundry as {"object": "0x..."}; both decode into Hex.
type Bytecode struct {
	Hex string
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &b.Hex)
	}
	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	b.Hex = obj.Object
	return nil
}

func (b Bytecode) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Hex)
}

// IsEmpty reports whether there is no code to deploy (interfaces, abstract contracts)
func (b Bytecode) IsEmpty() bool {
	h := strings.TrimPrefix(b.Hex, "0x")
	return h == ""
}

// NeedsLinking reports whether the bytecode still contains library placeholders
func (b Bytecode) NeedsLinking() bool {
	return strings.Contains(b.Hex, "__$")
}

// Artifact is a compiled contract artifact (Hardhat format, Foundry compatible)
type Artifact struct {
	Format       string          `json:"_format,omitempty"`
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     Bytecode        `json:"bytecode"`
}

// BuildInfo is the compiler input/output record Hardhat writes per compilation
type BuildInfo struct {
	Format          string          `json:"_format,omitempty"`
	ID              string          `json:"id"`
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}

// CompilerVersion returns the version string explorers expect, e.g. "v0.8.19+commit.7dd6d404"
func (b *BuildInfo) CompilerVersion() string {
	v := b.SolcLongVersion
	if v == "" {
		v = b.SolcVersion
	}
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
