package opts

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
}

// LoadConfig loads --config if set, then .rewriterc.yaml in the working
// directory, and otherwise falls back to the built-in preset configuration
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	if o.ConfigFile != "" {
		return config.Load(ctx, o.ConfigFile)
	}

	if _, err := os.Stat(config.DefaultFile); err == nil {
		return config.Load(ctx, config.DefaultFile)
	} else if !os.IsNotExist(err) {
		return nil, errors.Errorf("checking for %s: %w", config.DefaultFile, err)
	}

	zerolog.Ctx(ctx).Debug().Msg("no config file found, using built-in preset")
	return config.Default(ctx, ".")
}
