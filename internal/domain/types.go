package domain

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Signer is the account that submits the deployment transaction
type Signer struct {
	Address common.Address
	Key     *ecdsa.PrivateKey
}

// DeployRequest is a contract creation ready to be signed and sent
type DeployRequest struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
	Args         []any  // Typed constructor arguments
	EncodedArgs  []byte // ABI encoding of Args, kept for verification
}

// PendingDeployment is a submitted but not yet confirmed contract creation
type PendingDeployment struct {
	Address  common.Address
	TxHash   common.Hash
	GasPrice *big.Int // Price offered in the transaction, nil for dynamic-fee txs
}

// DeploymentReceipt is the mined result of a contract creation
type DeploymentReceipt struct {
	TxHash            common.Hash
	ContractAddress   common.Address
	BlockNumber       uint64
	GasUsed           uint64
	EffectiveGasPrice *big.Int
	Status            uint64
	Confirmations     uint64
}

// VerificationRequest carries everything an explorer needs to verify a deployment
type VerificationRequest struct {
	Address         string
	ChainID         uint64
	ContractName    string // Fully qualified, e.g. "contracts/NotificationSystem.sol:NotificationSystem"
	CompilerVersion string
	SourceJSON      string // Solidity standard-JSON input
	ConstructorArgs string // Hex without 0x prefix
	APIURL          string
	APIKey          string
}
