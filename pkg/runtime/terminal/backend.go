package terminal

import (
	"context"
	"fmt"

	"github.com/de-tools/ternak-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/ternak-atlas/pkg/services/config"
	"github.com/de-tools/ternak-atlas/pkg/services/export"
	"github.com/de-tools/ternak-atlas/pkg/services/participant"
	"github.com/de-tools/ternak-atlas/pkg/services/report"
	"github.com/de-tools/ternak-atlas/pkg/store/sqldb"
	sqlparticipant "github.com/de-tools/ternak-atlas/pkg/store/sqldb/participant"
	sqlreport "github.com/de-tools/ternak-atlas/pkg/store/sqldb/report"
)

// OpenBackend resolves profile from the INI file at profilePath and wires
// the services on top of the store it names.
func OpenBackend(ctx context.Context, profilePath, profile string) (*commands.Services, error) {
	registry, err := config.NewRegistry(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", profilePath, err)
	}

	settings, err := registry.GetStoreSettings(ctx, profile)
	if err != nil {
		return nil, err
	}

	db, err := sqldb.NewDB(*settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", settings.Driver, err)
	}

	participantStore, err := sqlparticipant.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	reportStore, err := sqlreport.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	participants := participant.NewService(participantStore)
	reports := report.NewService(participantStore, reportStore, report.WithTransactions(db))

	var uploader export.Uploader
	if s3, err := export.NewS3UploaderFromEnv(ctx, ""); err == nil {
		uploader = s3
	}

	return &commands.Services{
		Participants: participants,
		Reports:      reports,
		Exporter:     export.NewExporter(participants, reports, uploader),
		Close:        db.Close,
	}, nil
}
