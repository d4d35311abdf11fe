package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

const (
	defaultPollInterval = 3 * time.Second
	codeFormatStandard  = "solidity-standard-json-input"
)

// EtherscanVerifier verifies contracts through the Etherscan V2 API, which
// serves every supported chain from one endpoint selected by chainid
type EtherscanVerifier struct {
	client       *http.Client
	pollInterval time.Duration
	log          *slog.Logger
}

// NewEtherscanVerifier creates a new verifier
func NewEtherscanVerifier(log *slog.Logger) *EtherscanVerifier {
	return &EtherscanVerifier{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		pollInterval: defaultPollInterval,
		log:          log.With("component", "EtherscanVerifier"),
	}
}

// SetPollInterval sets how often the verification status is checked
func (v *EtherscanVerifier) SetPollInterval(d time.Duration) {
	v.pollInterval = d
}

// etherscanResponse represents Etherscan API response
type etherscanResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// Verify submits the source and waits for the explorer's verdict. An
// explorer reporting the source as already published yields an
// *domain.ExplorerError matching domain.ErrAlreadyVerified.
func (v *EtherscanVerifier) Verify(ctx context.Context, req *domain.VerificationRequest) error {
	if req.APIKey == "" {
		return fmt.Errorf("%w: no explorer API key configured", domain.ErrUnclassifiedVerification)
	}

	guid, err := v.submit(ctx, req)
	if err != nil {
		return err
	}
	v.log.Debug("verification submitted", "guid", guid, "address", req.Address)

	return v.waitForResult(ctx, req, guid)
}

// submit posts the standard-JSON input and returns the verification GUID
func (v *EtherscanVerifier) submit(ctx context.Context, req *domain.VerificationRequest) (string, error) {
	data := url.Values{}
	data.Set("apikey", req.APIKey)
	data.Set("chainid", strconv.FormatUint(req.ChainID, 10))
	data.Set("module", "contract")
	data.Set("action", "verifysourcecode")
	data.Set("contractaddress", req.Address)
	data.Set("sourceCode", req.SourceJSON)
	data.Set("codeformat", codeFormatStandard)
	data.Set("contractname", req.ContractName)
	data.Set("compilerversion", req.CompilerVersion)
	data.Set("constructorArguements", req.ConstructorArgs) // Note: Etherscan typo

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.APIURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	result, err := v.do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to submit verification: %w", err)
	}
	if result.Status != "1" {
		return "", &domain.ExplorerError{Status: result.Status, Message: result.Result}
	}
	return result.Result, nil
}

// waitForResult polls checkverifystatus until the explorer leaves the queue
func (v *EtherscanVerifier) waitForResult(ctx context.Context, req *domain.VerificationRequest, guid string) error {
	params := url.Values{}
	params.Set("apikey", req.APIKey)
	params.Set("chainid", strconv.FormatUint(req.ChainID, 10))
	params.Set("module", "contract")
	params.Set("action", "checkverifystatus")
	params.Set("guid", guid)
	statusURL := req.APIURL + "?" + params.Encode()

	ticker := time.NewTicker(v.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
		if err != nil {
			return err
		}
		result, err := v.do(httpReq)
		if err != nil {
			return fmt.Errorf("failed to check verification status: %w", err)
		}

		// Check if still pending
		if strings.Contains(strings.ToLower(result.Result), "pending") {
			v.log.Debug("verification pending", "guid", guid)
			continue
		}

		if result.Status != "1" {
			return &domain.ExplorerError{Status: result.Status, Message: result.Result}
		}
		return nil
	}
}

func (v *EtherscanVerifier) do(req *http.Request) (*etherscanResponse, error) {
	resp, err := v.client.Do(req) //nolint:gosec // URL is constructed from configured explorer endpoint
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ExplorerError{Status: resp.Status, Message: strings.TrimSpace(string(body))}
	}

	var result etherscanResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractVerifier = (*EtherscanVerifier)(nil)
