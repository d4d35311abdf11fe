package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for deploy and verify runs
var (
	// ErrAuthentication is returned when no usable signing key is configured
	ErrAuthentication = errors.New("no usable signing account configured (PRIVATE_KEY must be 0x-prefixed and 66 characters long)")

	// ErrDeploymentFailure is returned when a deployment transaction reverts or is rejected by the node
	ErrDeploymentFailure = errors.New("deployment failed")

	// ErrTransactionTimeout is returned when a transaction does not reach its confirmation depth in time
	ErrTransactionTimeout = errors.New("transaction confirmation timed out")

	// ErrMissingArtifact is returned when verification runs without a readable deployment record
	ErrMissingArtifact = errors.New("deployment record not found or unreadable")

	// ErrAlreadyVerified is returned by verifiers when the contract source is already published
	ErrAlreadyVerified = errors.New("already verified")

	// ErrUnclassifiedVerification is returned for any other verification failure
	ErrUnclassifiedVerification = errors.New("verification failed")

	// ErrInvalidRecord is returned when a deployment record is missing required fields
	ErrInvalidRecord = errors.New("invalid deployment record")

	// ErrContractNotFound is returned when no compiled artifact matches a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrNetworkNotFound is returned when a network name is not configured
	ErrNetworkNotFound = errors.New("network not found")

	// ErrChainIDMismatch is returned when the RPC endpoint serves a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")
)

// alreadyVerifiedMarker is matched case-insensitively against explorer messages.
// Etherscan-family APIs report this condition only as free text.
const alreadyVerifiedMarker = "already verified"

// DeploymentFailureError describes a rejected or reverted deployment transaction
type DeploymentFailureError struct {
	TxHash string
	Status uint64
	Reason string
}

func (e *DeploymentFailureError) Error() string {
	if e.TxHash == "" {
		return fmt.Sprintf("deployment failed: %s", e.Reason)
	}
	if e.Reason == "" {
		return fmt.Sprintf("deployment failed: transaction %s reverted (status %d)", e.TxHash, e.Status)
	}
	return fmt.Sprintf("deployment failed: transaction %s: %s", e.TxHash, e.Reason)
}

func (e *DeploymentFailureError) Is(target error) bool {
	return target == ErrDeploymentFailure
}

// TransactionTimeoutError is returned when the confirmation wait exceeds its deadline
type TransactionTimeoutError struct {
	TxHash        string
	Confirmations uint64
	Timeout       time.Duration
}

func (e *TransactionTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s did not reach %d confirmations within %s", e.TxHash, e.Confirmations, e.Timeout)
}

func (e *TransactionTimeoutError) Is(target error) bool {
	return target == ErrTransactionTimeout
}

// ExplorerError represents a non-success response from a block explorer verification API
type ExplorerError struct {
	Status  string
	Message string
}

func (e *ExplorerError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("explorer error: %s", e.Message)
	}
	return fmt.Sprintf("explorer error (status %s): %s", e.Status, e.Message)
}

// Is maps explorer responses onto the verification sentinels.
func (e *ExplorerError) Is(target error) bool {
	switch target {
	case ErrAlreadyVerified:
		return containsAlreadyVerified(e.Message)
	case ErrUnclassifiedVerification:
		return !containsAlreadyVerified(e.Message)
	}
	return false
}

// IsAlreadyVerified reports whether err means the contract is already verified.
// Structured errors are checked first; the message text is the fallback for
// verifiers that only surface plain errors.
func IsAlreadyVerified(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAlreadyVerified) {
		return true
	}
	return containsAlreadyVerified(err.Error())
}

func containsAlreadyVerified(msg string) bool {
	return strings.Contains(strings.ToLower(msg), alreadyVerifiedMarker)
}
