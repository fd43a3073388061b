package cli

import (
	"sort"
	"strings"

	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/assets"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/config"
)

func migrateUp(cfg config.Config) error {
	return applyMigrations(cfg, ".up.sql", false)
}

func migrateDown(cfg config.Config) error {
	return applyMigrations(cfg, ".down.sql", true)
}

func applyMigrations(cfg config.Config, suffix string, reverse bool) error {
	entries, err := assets.Migrations.ReadDir("migrations")
	if err != nil {
		return errors.Wrap(err, "failed to read migrations directory")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if reverse {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}

	for _, name := range names {
		raw, err := assets.Migrations.ReadFile("migrations/" + name)
		if err != nil {
			return errors.Wrap(err, "failed to read migration", logan.F{"migration": name})
		}
		if err = cfg.DB().ExecRaw(string(raw)); err != nil {
			return errors.Wrap(err, "failed to apply migration", logan.F{"migration": name})
		}
	}

	return nil
}
