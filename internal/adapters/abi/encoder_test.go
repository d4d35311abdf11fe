package abi

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
)

func contractWithABI(abiJSON, bytecode string) *models.Contract {
	return &models.Contract{
		Name:       "NotificationSystem",
		SourceName: "contracts/NotificationSystem.sol",
		Artifact: &models.Artifact{
			ContractName: "NotificationSystem",
			ABI:          json.RawMessage(abiJSON),
			Bytecode:     models.Bytecode{Hex: bytecode},
		},
	}
}

func TestBuildDeployRequest_NoConstructorArgs(t *testing.T) {
	c := contractWithABI(`[{"type":"function","name":"notify","inputs":[],"outputs":[]}]`, "0x6080604052")

	req, err := NewEncoder().BuildDeployRequest(c, nil)
	require.NoError(t, err)
	assert.Equal(t, "NotificationSystem", req.ContractName)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, req.Bytecode)
	assert.Empty(t, req.EncodedArgs)
	assert.Empty(t, req.Args)
	assert.Contains(t, req.ABI.Methods, "notify")
}

func TestBuildDeployRequest_WithConstructorArgs(t *testing.T) {
	abiJSON := `[{"type":"constructor","inputs":[
		{"name":"owner","type":"address"},
		{"name":"maxSubscribers","type":"uint256"}
	]}]`
	c := contractWithABI(abiJSON, "0x6080")

	req, err := NewEncoder().BuildDeployRequest(c, []string{"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "100"})
	require.NoError(t, err)
	require.Len(t, req.Args, 2)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), req.Args[0])
	assert.Equal(t, big.NewInt(100), req.Args[1])

	want := common.LeftPadBytes(common.FromHex("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), 32)
	want = append(want, common.LeftPadBytes([]byte{100}, 32)...)
	assert.Equal(t, want, req.EncodedArgs)
}

func TestBuildDeployRequest_Errors(t *testing.T) {
	ctorABI := `[{"type":"constructor","inputs":[{"name":"owner","type":"address"}]}]`

	tests := []struct {
		name     string
		contract *models.Contract
		args     []string
		wantErr  error
		wantText string
	}{
		{
			name:     "no artifact",
			contract: &models.Contract{Name: "NotificationSystem"},
			wantErr:  domain.ErrContractNotFound,
		},
		{
			name:     "interface",
			contract: contractWithABI(`[]`, "0x"),
			wantText: "has no bytecode",
		},
		{
			name:     "needs linking",
			contract: contractWithABI(`[]`, "0x60__$1234567890abcdef$__60"),
			wantText: "library linking",
		},
		{
			name:     "broken abi",
			contract: contractWithABI(`{"not":"an abi"}`, "0x60"),
			wantText: "failed to parse ABI",
		},
		{
			name:     "too few args",
			contract: contractWithABI(ctorABI, "0x60"),
			wantText: "takes 1 argument(s) (address owner), got 0",
		},
		{
			name:     "too many args",
			contract: contractWithABI(`[]`, "0x60"),
			args:     []string{"1"},
			wantText: "takes 0 argument(s) (none), got 1",
		},
		{
			name:     "bad argument",
			contract: contractWithABI(ctorABI, "0x60"),
			args:     []string{"alice"},
			wantText: "constructor argument owner (address)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncoder().BuildDeployRequest(tt.contract, tt.args)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantText != "" {
				assert.Contains(t, err.Error(), tt.wantText)
			}
		})
	}
}

func mustType(t *testing.T, name string) abi.Type {
	t.Helper()
	typ, err := abi.NewType(name, "", nil)
	require.NoError(t, err)
	return typ
}

func TestCoerceArgument(t *testing.T) {
	tests := []struct {
		typ     string
		value   string
		want    any
		wantErr bool
	}{
		{typ: "address", value: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", want: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")},
		{typ: "address", value: "0x1234", wantErr: true},
		{typ: "bool", value: "true", want: true},
		{typ: "bool", value: "0", want: false},
		{typ: "bool", value: "yes", wantErr: true},
		{typ: "string", value: " Base alerts ", want: "Base alerts"},
		{typ: "bytes", value: "0xdeadbeef", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		{typ: "bytes", value: "deadbeef", wantErr: true},
		{typ: "bytes4", value: "0xdeadbeef", want: [4]byte{0xde, 0xad, 0xbe, 0xef}},
		{typ: "bytes4", value: "0xdead", wantErr: true},
		{typ: "uint256", value: "1000000000000000000", want: big.NewInt(1_000_000_000_000_000_000)},
		{typ: "uint256", value: "0x10", want: big.NewInt(16)},
		{typ: "uint256", value: "-1", wantErr: true},
		{typ: "uint8", value: "255", want: uint8(255)},
		{typ: "uint8", value: "256", wantErr: true},
		{typ: "uint64", value: "42", want: uint64(42)},
		{typ: "int8", value: "-128", want: int8(-128)},
		{typ: "int8", value: "128", wantErr: true},
		{typ: "int256", value: "-5", want: big.NewInt(-5)},
		{typ: "uint256", value: "ten", wantErr: true},
		{typ: "address[]", value: "[]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.typ+" "+strings.TrimSpace(tt.value), func(t *testing.T) {
			got, err := CoerceArgument(mustType(t, tt.typ), tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
