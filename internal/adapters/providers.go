package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/notify-deploy/internal/adapters/abi"
	"github.com/trebuchet-org/notify-deploy/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/notify-deploy/internal/adapters/config"
	"github.com/trebuchet-org/notify-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/notify-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/notify-deploy/internal/adapters/repository/contracts"
	"github.com/trebuchet-org/notify-deploy/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/notify-deploy/internal/adapters/senders"
	"github.com/trebuchet-org/notify-deploy/internal/adapters/verification"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// RepositorySet provides file-based implementations
var RepositorySet = wire.NewSet(
	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentStore), new(*deployments.FileRepository)),

	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),
)

// BlockchainSet provides chain access, signing and ABI encoding
var BlockchainSet = wire.NewSet(
	blockchain.NewDialer,
	wire.Bind(new(usecase.ChainDialer), new(*blockchain.Dialer)),

	senders.NewService,
	wire.Bind(new(usecase.SignerProvider), new(*senders.Service)),

	abi.NewEncoder,
	wire.Bind(new(usecase.ConstructorEncoder), new(*abi.Encoder)),
)

// VerificationSet provides explorer verification
var VerificationSet = wire.NewSet(
	verification.NewEtherscanVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.EtherscanVerifier)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),

	progress.NewProgressSink,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	BlockchainSet,
	VerificationSet,
	InteractiveSet,
	ConfigSet,
)
