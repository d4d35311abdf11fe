package senders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// Service resolves signing accounts from a network's account list
type Service struct {
	log *slog.Logger
}

// NewService creates a new sender service
func NewService(log *slog.Logger) *Service {
	return &Service{log: log.With("component", "SenderService")}
}

// DefaultSigner returns the first account of the network
func (s *Service) DefaultSigner(ctx context.Context, network *config.Network) (*domain.Signer, error) {
	if network == nil || !network.HasSigner() {
		return nil, domain.ErrAuthentication
	}

	signer, err := ParsePrivateKey(network.Accounts[0])
	if err != nil {
		return nil, err
	}

	s.log.Debug("resolved signer", "network", network.Name, "address", signer.Address.Hex())
	return signer, nil
}

// ParsePrivateKey decodes a hex private key, with or without 0x prefix.
// The key itself never appears in the returned error.
func ParsePrivateKey(hexKey string) (*domain.Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: private key is not a valid secp256k1 key", domain.ErrAuthentication)
	}
	return &domain.Signer{
		Address: crypto.PubkeyToAddress(key.PublicKey),
		Key:     key,
	}, nil
}

var _ usecase.SignerProvider = (*Service)(nil)
