package health

import (
	"context"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/api"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/config"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/directory"
)

type Endpoints struct {
	Backend   *api.Client
	Directory *directory.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "backend",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints.Backend == nil {
					return fmt.Errorf("backend client is not initialized")
				}

				if err := endpoints.Backend.Ping(ctx); err != nil {
					return fmt.Errorf("failed to reach backend: %w", err)
				}

				return nil
			},
		},
		{
			Name:      "directory",
			Timeout:   3 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				if endpoints.Directory == nil {
					return fmt.Errorf("directory client is not initialized")
				}

				if err := endpoints.Directory.Ping(ctx); err != nil {
					return fmt.Errorf("failed to reach directory service: %w", err)
				}

				return nil
			},
		},
	}

	if cfg.Cache.Backend == "redis" {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.Redis.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    "nhom7-storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
