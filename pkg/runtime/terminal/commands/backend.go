package commands

import (
	"context"

	"github.com/de-tools/ternak-atlas/pkg/services/export"
	"github.com/de-tools/ternak-atlas/pkg/services/participant"
	"github.com/de-tools/ternak-atlas/pkg/services/report"
)

// Services is what a command needs from the backing store.
type Services struct {
	Participants participant.Service
	Reports      report.Service
	Exporter     *export.Exporter
	Close        func() error
}

type Factory func(ctx context.Context, profilePath, profile string) (*Services, error)

// Backend holds the persistent flags shared by all commands.
type Backend struct {
	Factory     Factory
	ProfilePath string
	Profile     string
}

func (b *Backend) open(ctx context.Context) (*Services, func(), error) {
	svc, err := b.Factory(ctx, b.ProfilePath, b.Profile)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if svc.Close != nil {
			_ = svc.Close()
		}
	}
	return svc, closer, nil
}
