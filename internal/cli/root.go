package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/krishimitra/krishi/internal/ai"
	"github.com/krishimitra/krishi/internal/backup"
	"github.com/krishimitra/krishi/internal/calendar"
	"github.com/krishimitra/krishi/internal/catalog"
	"github.com/krishimitra/krishi/internal/config"
	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/farm"
	"github.com/krishimitra/krishi/internal/logger"
	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/news"
	"github.com/krishimitra/krishi/internal/scheduler"
	"github.com/krishimitra/krishi/internal/storage"
	"github.com/krishimitra/krishi/internal/storage/postgres"
	"github.com/krishimitra/krishi/internal/utils"
	"github.com/krishimitra/krishi/internal/weather"
)

// ErrNoUser is returned by commands that act for a farmer when --user is unset.
var ErrNoUser = errors.New("no user selected: pass --user or set KRISHI_USER")

type Context struct {
	Store     storage.Provider
	Catalog   *catalog.Catalog
	Projector *calendar.Projector
	Farm      *farm.Manager
	Scheduler *scheduler.Scheduler
	Config    config.Config

	// User is the mobile number commands act for.
	User      string
	RequestID string

	Now func() time.Time
}

// NewContext wires the core services over store.
func NewContext(store storage.Provider, cat *catalog.Catalog, cfg config.Config) *Context {
	projector := calendar.NewProjector(cat)
	return &Context{
		Store:     store,
		Catalog:   cat,
		Projector: projector,
		Farm:      farm.NewManager(store, farm.WithCatalog(cat)),
		Scheduler: scheduler.New(store, projector),
		Config:    cfg,
		Now:       time.Now,
	}
}

// Today is the local calendar date.
func (c *Context) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return utils.Today(now())
}

// CurrentUser loads the record of the selected farmer.
func (c *Context) CurrentUser() (models.UserRecord, error) {
	if c.User == "" {
		return models.UserRecord{}, ErrNoUser
	}
	user, found, err := c.Farm.GetUser(c.User)
	if err != nil {
		return models.UserRecord{}, err
	}
	if !found {
		return models.UserRecord{}, apperrors.NotFoundf("user %s", c.User)
	}
	return user, nil
}

// PerformAutomaticBackup snapshots file-backed stores and logs failures
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*postgres.Store); ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) Weather() *weather.Client {
	return weather.NewClient(c.Config.WeatherBaseURL, c.Config.WeatherAPIKey, c.Config.HTTPTimeout)
}

func (c *Context) News() *news.Client {
	return news.NewClient(c.Config.NewsBaseURL, c.Config.NewsAPIKey, c.Config.HTTPTimeout)
}

func (c *Context) Assistant() ai.Assistant {
	return ai.New(c.Config)
}

// Language returns lang, or the configured language when lang is empty.
func (c *Context) Language(lang string) string {
	if lang != "" {
		return lang
	}
	return c.Config.Language
}

// FormatTask renders one upcoming task as a single line.
func FormatTask(t models.Task) string {
	when := "today"
	switch {
	case t.DaysUntil == 1:
		when = "tomorrow"
	case t.DaysUntil > 1:
		when = fmt.Sprintf("in %d days", t.DaysUntil)
	}
	return fmt.Sprintf("%s  %-10s  %-10s  %s", utils.FormatDate(t.Date), when, t.Kind, t.Title)
}
