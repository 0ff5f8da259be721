// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/config"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/confluence"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
	"github.com/spf13/viper"
)

// CommandDeps holds the dependencies shared by all commands.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
	Wiki   *confluence.Client
	RunID  string
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	if d.Wiki == nil {
		return ErrWikiRequired
	}
	return nil
}

// Validator checks the configuration a command needs, e.g. (*config.Config).ValidatePublisher.
type Validator func(*config.Config) error

// NewCommandDeps loads and validates the configuration, then builds the
// run-scoped logger and the Confluence client.
func NewCommandDeps(validate Validator) (CommandDeps, error) {
	path := viper.GetString("config")
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	// LOG_LEVEL and --debug arrive through viper and win over the file.
	debug := viper.GetBool("app.debug")
	if level := viper.GetString("logger.level"); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if debug {
		cfg.Logging.Level = string(logger.DebugLevel)
	}
	if encoding := viper.GetString("logger.encoding"); encoding != "" {
		cfg.Logging.Format = strings.ToLower(encoding)
	}

	if validate == nil {
		validate = (*config.Config).Validate
	}
	if err = validate(cfg); err != nil {
		return CommandDeps{}, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:       logger.Level(cfg.Logging.Level),
		Development: debug,
		Encoding:    cfg.Logging.Format,
	})
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	runID := uuid.NewString()
	log = log.WithRunID(runID)

	wiki := confluence.NewClient(
		confluence.WithBaseURL(cfg.Confluence.URL),
		confluence.WithCredentials(cfg.Confluence.Username, cfg.Confluence.APIToken),
		confluence.WithSpaceKey(cfg.Confluence.SpaceKey),
		confluence.WithTimeout(cfg.Confluence.Timeout),
		confluence.WithMaxAttempts(cfg.Confluence.MaxAttempts),
		confluence.WithLogger(log.WithComponent("confluence")),
	)

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
		Wiki:   wiki,
		RunID:  runID,
	}
	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}
