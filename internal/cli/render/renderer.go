package render

import "github.com/trebuchet-org/notify-deploy/internal/usecase"

type Renderer[T any] interface {
	Render(result T) error
}

var (
	_ Renderer[*usecase.DeployResult]         = (*DeployRenderer)(nil)
	_ Renderer[*usecase.VerifyResult]         = (*VerifyRenderer)(nil)
	_ Renderer[*usecase.ShowDeploymentResult] = (*ShowRenderer)(nil)
)
