package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/balkashynov/landing/internal/config"
	"github.com/balkashynov/landing/internal/contact"
	"github.com/balkashynov/landing/internal/db"
	"github.com/balkashynov/landing/internal/logger"
	"github.com/balkashynov/landing/internal/theme"
	"github.com/balkashynov/landing/internal/tui"
)

// app is everything a command needs once startup is done
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	store *db.SettingStore
	pref  *theme.Preference

	// flowOptions is extra wiring for submission flows, used by tests
	flowOptions []contact.FlowOption

	closers []func() error
}

// setupApp loads configuration, opens logging and the settings database and
// reads the stored theme. Interactive screens own the terminal, so with
// interactive set the log goes to a file instead of stderr.
func setupApp(interactive bool) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{Path: configPath, EnvFile: envFile})
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	a := &app{cfg: cfg}

	if interactive {
		file, err := openLogFile(cfg.LogFile())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, file.Close)
		a.log, err = logger.New(logger.Options{Level: cfg.Log.Level, Writer: file})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	} else {
		a.log, err = logger.New(logger.Options{Level: cfg.Log.Level, HumanReadable: true})
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	if err := db.Initialize(cfg.Storage.Path); err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	a.attach(db.DB)
	return a, nil
}

// attach wires the settings store and theme preference to conn
func (a *app) attach(conn *gorm.DB) {
	a.store = db.NewSettingStore(conn)
	a.pref = theme.Load(a.store, a.log)

	if a.cfg.AccessKey == "" {
		a.log.Warn("no Web3Forms access key configured, the relay will reject submissions")
	} else {
		a.log.With("source", a.cfg.AccessKeySource).Debug("access key loaded")
	}
}

// newFlow builds a submission flow reporting to notifier
func (a *app) newFlow(notifier contact.Notifier) *contact.Flow {
	opts := append([]contact.FlowOption{contact.WithLogger(a.log)}, a.flowOptions...)
	return contact.NewFlow(a.cfg.ContactConfig(), notifier, opts...)
}

func (a *app) landingOptions(prefilled map[string]string) tui.Options {
	return tui.Options{
		Preference:  a.pref,
		Contact:     a.cfg.ContactConfig(),
		FlowOptions: a.flowOptions,
		Logger:      a.log,
		Prefilled:   prefilled,
	}
}

// Close releases resources in reverse order of acquisition
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Error(err, "cleanup failed")
		}
	}
	a.closers = nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
