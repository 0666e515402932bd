package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inquiry-desk/config"
	"inquiry-desk/countries"
	"inquiry-desk/models"
	"inquiry-desk/services"
	"inquiry-desk/storage"
	"inquiry-desk/utils"
)

// ErrUnknownStateBackend is returned for a STATE_BACKEND other than file or redis.
var ErrUnknownStateBackend = errors.New("unknown state backend")

// App holds everything a surface (CLI, HTTP API, terminal wizard) needs.
// It is built once at start-up and passed explicitly.
type App struct {
	Config    *config.Config
	Logger    *utils.Logger
	Directory *countries.Directory
	Countries *countries.Client
	Inquiries *services.InquiryCollection
	Session   *services.Session
	Insights  *services.InsightService
	Store     storage.StateStore
}

// New wires an App around an already opened state store. Nothing is loaded
// until Load is called.
func New(cfg *config.Config, logger *utils.Logger, store storage.StateStore) *App {
	dir := countries.NewDirectory(nil)
	inquiries := services.NewInquiryCollection(nil)
	return &App{
		Config:    cfg,
		Logger:    logger,
		Directory: dir,
		Countries: countries.NewClient(cfg.CountriesAPIURL, cfg.CountriesRefreshInterval, cfg.MaxRetries, logger),
		Inquiries: inquiries,
		Session:   services.NewSession(dir, inquiries, logger),
		Insights:  services.NewInsightService(logger),
		Store:     store,
	}
}

// Open opens the configured state store, wires the App and loads persisted state.
func Open(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*App, error) {
	store, err := OpenStateStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a := New(cfg, logger, store)
	if err := a.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

// OpenStateStore returns the store selected by cfg.StateBackend.
func OpenStateStore(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.StateStore, error) {
	switch cfg.StateBackend {
	case "file", "":
		return storage.NewFileStateStore(cfg.StateDir)
	case "redis":
		s := storage.NewRedisStateStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "inquiry-desk:")
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: time.Second, Logger: logger}
		if err := retry.Do(ctx, "redis ping", s.Ping); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("state: redis: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("state: %q: %w", cfg.StateBackend, ErrUnknownStateBackend)
	}
}

// Load restores the directory, the collection and the wizard session from the
// state store. Missing keys leave the fresh defaults in place.
func (a *App) Load(ctx context.Context) error {
	if data, ok, err := a.Store.Load(ctx, storage.KeyCountries); err != nil {
		return err
	} else if ok {
		var list []models.Country
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("state: decode %s: %w", storage.KeyCountries, err)
		}
		a.Directory.Replace(list)
	}

	if data, ok, err := a.Store.Load(ctx, storage.KeyInquiries); err != nil {
		return err
	} else if ok {
		list, err := models.UnmarshalInquiries(data)
		if err != nil {
			return fmt.Errorf("state: decode %s: %w", storage.KeyInquiries, err)
		}
		a.Inquiries.Replace(list)
	}

	if data, ok, err := a.Store.Load(ctx, storage.KeyNewInquiry); err != nil {
		return err
	} else if ok {
		var snap services.SessionSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("state: decode %s: %w", storage.KeyNewInquiry, err)
		}
		a.Session.Restore(snap)
	}

	a.Logger.Debug("[app] Loaded %d countries, %d inquiries, wizard at %s",
		a.Directory.Len(), a.Inquiries.Len(), a.Session.CurrentStep())
	return nil
}

// Save persists the collection and the wizard session.
func (a *App) Save(ctx context.Context) error {
	inquiries, err := models.MarshalInquiries(a.Inquiries.All())
	if err != nil {
		return fmt.Errorf("state: encode %s: %w", storage.KeyInquiries, err)
	}
	if err := a.Store.Save(ctx, storage.KeyInquiries, inquiries); err != nil {
		return err
	}

	session, err := json.Marshal(a.Session.Snapshot())
	if err != nil {
		return fmt.Errorf("state: encode %s: %w", storage.KeyNewInquiry, err)
	}
	return a.Store.Save(ctx, storage.KeyNewInquiry, session)
}

// ClearInquiries empties the collection and drops its persisted copy.
func (a *App) ClearInquiries(ctx context.Context) error {
	a.Inquiries.DeleteAll()
	return a.Store.Delete(ctx, storage.KeyInquiries)
}

// RefreshCountries downloads the country list, replaces the directory and
// persists it.
func (a *App) RefreshCountries(ctx context.Context) error {
	list, err := a.Countries.GetCountries(ctx)
	if err != nil {
		return err
	}
	a.Directory.Replace(list)

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("state: encode %s: %w", storage.KeyCountries, err)
	}
	if err := a.Store.Save(ctx, storage.KeyCountries, data); err != nil {
		return err
	}
	a.Logger.Info("[app] Directory refreshed: %d countries", len(list))
	return nil
}

// EnsureCountries fetches the directory when it is empty. A failed fetch is
// logged and the wizard carries on without country choices.
func (a *App) EnsureCountries(ctx context.Context) {
	if a.Directory.Len() > 0 {
		return
	}
	if err := a.RefreshCountries(ctx); err != nil {
		a.Logger.Warn("[app] Country fetch failed, continuing without a directory: %v", err)
	}
}

// Report computes the analytics over the current collection.
func (a *App) Report() *models.InsightReport {
	return a.Insights.Generate(a.Inquiries.All(), a.Directory.AsMap())
}

// OpenArchive connects to the configured SQL archive.
func (a *App) OpenArchive(ctx context.Context) (*storage.SQLArchive, error) {
	retry := &utils.RetryConfig{MaxAttempts: a.Config.MaxRetries, BaseDelay: 2 * time.Second, Logger: a.Logger}
	return storage.NewSQLArchive(ctx, a.Config.ArchiveDriver, a.Config.DSN(), retry, a.Logger)
}

// PushArchive replaces the archived collection with the local one.
func (a *App) PushArchive(ctx context.Context) (int, error) {
	archive, err := a.OpenArchive(ctx)
	if err != nil {
		return 0, err
	}
	defer archive.Close()

	list := a.Inquiries.All()
	return len(list), archive.Write(ctx, list)
}

// PullArchive replaces the local collection with the archived one, dropping
// duplicate IDs, and persists it.
func (a *App) PullArchive(ctx context.Context) (int, error) {
	archive, err := a.OpenArchive(ctx)
	if err != nil {
		return 0, err
	}
	defer archive.Close()

	list, err := archive.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	list = services.NewCleaner(a.Logger).Clean(list)
	a.Inquiries.Replace(list)
	return len(list), a.Save(ctx)
}

func (a *App) Close() error {
	return a.Store.Close()
}
