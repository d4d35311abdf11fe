package abi

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// Encoder builds deploy requests from compiled artifacts and CLI arguments
type Encoder struct{}

// NewEncoder creates a new constructor encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// BuildDeployRequest parses the artifact ABI, coerces args to the constructor
// input types and ABI-encodes them
func (e *Encoder) BuildDeployRequest(contract *models.Contract, args []string) (*domain.DeployRequest, error) {
	if contract.Artifact == nil {
		return nil, fmt.Errorf("%w: %s has no artifact loaded", domain.ErrContractNotFound, contract.Name)
	}
	artifact := contract.Artifact

	if artifact.Bytecode.IsEmpty() {
		return nil, fmt.Errorf("%s has no bytecode (abstract contract or interface?)", contract.Name)
	}
	if artifact.Bytecode.NeedsLinking() {
		return nil, fmt.Errorf("%s requires library linking, which is not supported", contract.Name)
	}

	parsed, err := ParseABI(artifact.ABI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", contract.Name, err)
	}

	inputs := parsed.Constructor.Inputs
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("%s constructor takes %d argument(s) (%s), got %d",
			contract.Name, len(inputs), describeInputs(inputs), len(args))
	}

	typed := make([]any, len(args))
	for i, input := range inputs {
		value, err := CoerceArgument(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("constructor argument %s (%s): %w", name, input.Type.String(), err)
		}
		typed[i] = value
	}

	encoded, err := inputs.Pack(typed...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}

	return &domain.DeployRequest{
		ContractName: contract.Name,
		ABI:          parsed,
		Bytecode:     common.FromHex(artifact.Bytecode.Hex),
		Args:         typed,
		EncodedArgs:  encoded,
	}, nil
}

// ParseABI parses a JSON ABI. An empty ABI parses to an empty abi.ABI.
func ParseABI(raw []byte) (abi.ABI, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return abi.ABI{}, nil
	}
	return abi.JSON(bytes.NewReader(raw))
}

// CoerceArgument converts a CLI string into the Go value go-ethereum packs for t
func CoerceArgument(t abi.Type, value string) (any, error) {
	value = strings.TrimSpace(value)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("invalid address %q", value)
		}
		return common.HexToAddress(value), nil

	case abi.BoolTy:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", value)
		}
		return b, nil

	case abi.StringTy:
		return value, nil

	case abi.BytesTy:
		b, err := hexutil.Decode(value)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %w", value, err)
		}
		return b, nil

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(value)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes%d %q: %w", t.Size, value, err)
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("bytes%d needs %d bytes, got %d", t.Size, t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.IntTy, abi.UintTy:
		return coerceInteger(t, value)
	}

	return nil, fmt.Errorf("unsupported constructor argument type %s", t.String())
}

func coerceInteger(t abi.Type, value string) (any, error) {
	n, ok := new(big.Int).SetString(value, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", value)
	}

	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%s out of range for uint%d", value, t.Size)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("%s out of range for int%d", value, t.Size)
		}
	}

	goType := t.GetType()
	if goType == reflect.TypeOf(&big.Int{}) {
		return n, nil
	}
	if t.T == abi.UintTy {
		return reflect.ValueOf(n.Uint64()).Convert(goType).Interface(), nil
	}
	return reflect.ValueOf(n.Int64()).Convert(goType).Interface(), nil
}

func describeInputs(inputs abi.Arguments) string {
	if len(inputs) == 0 {
		return "none"
	}
	parts := make([]string, len(inputs))
	for i, in := range inputs {
		if in.Name == "" {
			parts[i] = in.Type.String()
		} else {
			parts[i] = fmt.Sprintf("%s %s", in.Type.String(), in.Name)
		}
	}
	return strings.Join(parts, ", ")
}

var _ usecase.ConstructorEncoder = (*Encoder)(nil)
