package quizgen

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/course-points/internal/service"
)

type Client interface {
	Generate(ctx context.Context, task service.ProvisionTask) ([]service.GeneratedQuestion, error)
}

type Servicer interface {
	TasksForProvisioning(ctx context.Context, limit uint) ([]service.ProvisionTask, error)
	ApplyGenerated(ctx context.Context, updates []service.ApplyGeneratedArgs) error
}
