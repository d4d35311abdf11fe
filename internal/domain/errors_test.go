package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExplorerErrorIs(t *testing.T) {
	tests := []struct {
		name             string
		err              *ExplorerError
		alreadyVerified  bool
		unclassifiedFail bool
	}{
		{
			name:            "etherscan already verified",
			err:             &ExplorerError{Status: "0", Message: "Contract source code already verified"},
			alreadyVerified: true,
		},
		{
			name:            "mixed case",
			err:             &ExplorerError{Message: "Already Verified"},
			alreadyVerified: true,
		},
		{
			name:             "compile failure",
			err:              &ExplorerError{Status: "0", Message: "Fail - Unable to verify"},
			unclassifiedFail: true,
		},
		{
			name:             "rate limited",
			err:              &ExplorerError{Status: "0", Message: "Max rate limit reached"},
			unclassifiedFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.alreadyVerified, errors.Is(tt.err, ErrAlreadyVerified))
			assert.Equal(t, tt.unclassifiedFail, errors.Is(tt.err, ErrUnclassifiedVerification))
			assert.Equal(t, tt.alreadyVerified, IsAlreadyVerified(tt.err))

			wrapped := fmt.Errorf("verify: %w", tt.err)
			assert.Equal(t, tt.alreadyVerified, IsAlreadyVerified(wrapped))
		})
	}
}

func TestIsAlreadyVerified(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: ErrAlreadyVerified, want: true},
		{name: "wrapped sentinel", err: fmt.Errorf("base: %w", ErrAlreadyVerified), want: true},
		{name: "plain text", err: errors.New("Contract source code already verified"), want: true},
		{name: "other", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAlreadyVerified(tt.err))
		})
	}
}

func TestErrorOutput(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{
			name:     "deployment rejected",
			err:      &DeploymentFailureError{Reason: "insufficient funds for gas * price + value"},
			sentinel: ErrDeploymentFailure,
			want:     "deployment failed: insufficient funds for gas * price + value",
		},
		{
			name:     "deployment reverted",
			err:      &DeploymentFailureError{TxHash: "0xabc", Status: 0},
			sentinel: ErrDeploymentFailure,
			want:     "deployment failed: transaction 0xabc reverted (status 0)",
		},
		{
			name:     "deployment with reason",
			err:      &DeploymentFailureError{TxHash: "0xabc", Reason: "out of gas"},
			sentinel: ErrDeploymentFailure,
			want:     "deployment failed: transaction 0xabc: out of gas",
		},
		{
			name:     "timeout",
			err:      &TransactionTimeoutError{TxHash: "0xabc", Confirmations: 5, Timeout: 10 * time.Minute},
			sentinel: ErrTransactionTimeout,
			want:     "transaction 0xabc did not reach 5 confirmations within 10m0s",
		},
		{
			name:     "explorer with status",
			err:      &ExplorerError{Status: "0", Message: "Invalid API Key"},
			sentinel: ErrUnclassifiedVerification,
			want:     "explorer error (status 0): Invalid API Key",
		},
		{
			name:     "explorer without status",
			err:      &ExplorerError{Message: "HTTP 502"},
			sentinel: ErrUnclassifiedVerification,
			want:     "explorer error: HTTP 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.sentinel)
		})
	}

	assert.NotErrorIs(t, &DeploymentFailureError{}, ErrTransactionTimeout)
	assert.NotErrorIs(t, &TransactionTimeoutError{}, ErrDeploymentFailure)
}
