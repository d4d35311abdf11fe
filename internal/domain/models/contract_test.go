package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytecodeUnmarshal(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         string
		empty        bool
		needsLinking bool
	}{
		{name: "hardhat string", input: `"0x6080604052"`, want: "0x6080604052"},
		{name: "foundry object", input: `{"object":"0x6080604052","linkReferences":{}}`, want: "0x6080604052"},
		{name: "interface", input: `"0x"`, want: "0x", empty: true},
		{name: "null", input: `null`, want: "", empty: true},
		{name: "unlinked", input: `"0x60__$abcdef$__60"`, want: "0x60__$abcdef$__60", needsLinking: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bytecode
			require.NoError(t, json.Unmarshal([]byte(tt.input), &b))
			assert.Equal(t, tt.want, b.Hex)
			assert.Equal(t, tt.empty, b.IsEmpty())
			assert.Equal(t, tt.needsLinking, b.NeedsLinking())
		})
	}

	var b Bytecode
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &b))
}

func TestArtifactUnmarshal(t *testing.T) {
	data := `{
		"_format": "hh-sol-artifact-1",
		"contractName": "NotificationSystem",
		"sourceName": "contracts/NotificationSystem.sol",
		"abi": [{"type":"constructor","inputs":[]}],
		"bytecode": "0x6080"
	}`

	var a Artifact
	require.NoError(t, json.Unmarshal([]byte(data), &a))
	assert.Equal(t, "NotificationSystem", a.ContractName)
	assert.Equal(t, "contracts/NotificationSystem.sol", a.SourceName)
	assert.Equal(t, "0x6080", a.Bytecode.Hex)
	assert.JSONEq(t, `[{"type":"constructor","inputs":[]}]`, string(a.ABI))
}

func TestFullyQualifiedName(t *testing.T) {
	c := &Contract{Name: "NotificationSystem", SourceName: "contracts/NotificationSystem.sol"}
	assert.Equal(t, "contracts/NotificationSystem.sol:NotificationSystem", c.FullyQualifiedName())

	c.SourceName = ""
	assert.Equal(t, "NotificationSystem", c.FullyQualifiedName())
}

func TestCompilerVersion(t *testing.T) {
	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{name: "long version", info: BuildInfo{SolcVersion: "0.8.19", SolcLongVersion: "0.8.19+commit.7dd6d404"}, want: "v0.8.19+commit.7dd6d404"},
		{name: "short only", info: BuildInfo{SolcVersion: "0.8.19"}, want: "v0.8.19"},
		{name: "already prefixed", info: BuildInfo{SolcLongVersion: "v0.8.20+commit.a1b79de6"}, want: "v0.8.20+commit.a1b79de6"},
		{name: "unknown", info: BuildInfo{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.CompilerVersion())
		})
	}
}
