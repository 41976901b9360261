package config

import (
	"context"
	"fmt"

	"github.com/de-tools/ternak-atlas/pkg/store/sqldb"
	"gopkg.in/ini.v1"
)

// Registry resolves named store profiles from an INI file such as
//
//	[default]
//	driver = duckdb
//	dsn    = ternak-atlas.db
//
//	[staging]
//	driver = postgres
//	dsn    = postgres://localhost/ternak?sslmode=disable
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetStoreSettings(ctx context.Context, profile string) (*sqldb.Settings, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetStoreSettings(_ context.Context, profile string) (*sqldb.Settings, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	driver := section.Key("driver").MustString(string(sqldb.DialectDuckDB))
	dsn := section.Key("dsn").String()

	return &sqldb.Settings{
		Driver: sqldb.Dialect(driver),
		DSN:    dsn,
	}, nil
}
