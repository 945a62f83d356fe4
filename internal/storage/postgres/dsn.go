package postgres

import (
	"fmt"

	"github.com/eplus-at/eplus-resources/config"
)

// DSN returns cfg.DSN when set, else a keyword/value string built from the
// individual settings.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}
