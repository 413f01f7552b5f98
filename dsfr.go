// Package dsfr serves a preview of the DSFR components with Fiber and templ.
package dsfr

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/a-h/templ"
	"github.com/aydenstechdungeon/dsfr/component/modal"
	"github.com/aydenstechdungeon/dsfr/fiber"
	"github.com/aydenstechdungeon/dsfr/i18n"
	"github.com/aydenstechdungeon/dsfr/layout"
	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-json"
	fiberpkg "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Version is the current version of the component library.
const Version = "0.1.0"

// Access log formats.
const (
	AccessLogFiber   = "fiber"
	AccessLogCompact = "compact"
)

// Config holds the preview server configuration.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
	// AppName is the page title and Fiber app name.
	AppName string `yaml:"app_name"`
	// DefaultLang is used when a request names no language.
	DefaultLang string `yaml:"default_lang"`
	// StylesheetURL and ScriptURL point at the DSFR distribution.
	StylesheetURL string `yaml:"stylesheet_url"`
	ScriptURL     string `yaml:"script_url"`
	// TranslationsFile is an optional YAML file of extra component messages.
	TranslationsFile string `yaml:"translations_file"`
	// WatchTranslations reloads TranslationsFile when it changes.
	WatchTranslations bool `yaml:"watch_translations"`
	// DevMode adds stack traces to error responses.
	DevMode bool `yaml:"dev_mode"`
	// AccessLog enables the access log.
	AccessLog bool `yaml:"access_log"`
	// AccessLogFormat selects the access log: "fiber" for Fiber's logger
	// middleware, "compact" for one log line per request with its language.
	AccessLogFormat string `yaml:"access_log_format"`
	// Compression configures response compression.
	Compression fiber.CompressionConfig `yaml:"compression"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		AppName:         "DSFR preview",
		DefaultLang:     "fr",
		StylesheetURL:   "https://cdn.jsdelivr.net/npm/@gouvfr/dsfr@1.12.1/dist/dsfr.min.css",
		ScriptURL:       "https://cdn.jsdelivr.net/npm/@gouvfr/dsfr@1.12.1/dist/dsfr.module.min.js",
		AccessLog:       true,
		AccessLogFormat: AccessLogFiber,
		Compression:     fiber.DefaultCompressionConfig(),
	}
}

// LoadConfig reads a YAML file over the default configuration.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// App is the preview application.
type App struct {
	Config Config
	Fiber  *fiberpkg.App
	// Modals allocates the identifiers of the gallery modals.
	Modals *modal.Allocator

	lang    language.Tag
	demos   []Demo
	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// New creates the application, loads translations and registers routes.
func New(config Config) (*App, error) {
	a := &App{
		Config: config,
		Modals: modal.NewAllocator(),
		lang:   i18n.ParseLang(config.DefaultLang),
	}
	a.demos = Demos(a.Modals)

	if config.TranslationsFile != "" {
		if err := i18n.LoadFile(config.TranslationsFile); err != nil {
			return nil, err
		}
		if config.WatchTranslations {
			if err := a.watchTranslations(); err != nil {
				return nil, err
			}
		}
	}

	a.Fiber = fiberpkg.New(fiberpkg.Config{
		AppName:               config.AppName,
		DisableStartupMessage: !config.DevMode,
		ErrorHandler:          fiber.ErrorHandler(config.DevMode),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	a.setupRoutes()
	return a, nil
}

func (a *App) setupRoutes() {
	app := a.Fiber
	app.Use(fiber.PanicHandler(a.Config.DevMode))
	if a.Config.AccessLog {
		if a.Config.AccessLogFormat == AccessLogCompact {
			app.Use(fiber.RequestLoggerMiddleware(nil))
		} else {
			app.Use(logger.New())
		}
	}
	app.Use(fiber.SecurityHeadersMiddleware())
	app.Use(fiber.CompressionMiddleware(a.Config.Compression))
	app.Use(fiber.LocaleMiddleware(a.lang))

	app.Get("/", func(c *fiberpkg.Ctx) error {
		return fiber.RenderComponent(c, a.Page(fiber.GetLang(c)))
	})
	app.Get("/modals.json", func(c *fiberpkg.Ctx) error {
		return c.JSON(a.ModalInfos())
	})
	app.Get("/modals/:id", func(c *fiberpkg.Ctx) error {
		for _, d := range a.demos {
			if d.Modal.ID() == c.Params("id") {
				return fiber.RenderComponent(c, d.Modal.Component(d.Props))
			}
		}
		return fiberpkg.NewError(fiberpkg.StatusNotFound, "unknown modal: "+c.Params("id"))
	})
	app.Get("/healthz", func(c *fiberpkg.Ctx) error {
		return c.SendString("ok")
	})
	app.Use(fiber.NotFoundHandler())
}

// ModalInfo describes a gallery modal in /modals.json.
type ModalInfo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DisplayName     string `json:"displayName"`
	ButtonPropsName string `json:"buttonPropsName"`
	TitleID         string `json:"titleId"`
	OpenedByDefault bool   `json:"openedByDefault"`
}

// ModalInfos lists the modals created by the app's allocator.
func (a *App) ModalInfos() []ModalInfo {
	modals := a.Modals.Modals()
	out := make([]ModalInfo, 0, len(modals))
	for _, m := range modals {
		out = append(out, ModalInfo{
			ID:              m.ID(),
			Name:            m.Name(),
			DisplayName:     m.DisplayName(),
			ButtonPropsName: m.ButtonPropsName(),
			TitleID:         modal.TitleID(m.ID()),
			OpenedByDefault: m.OpenedByDefault(),
		})
	}
	return out
}

// Page returns the gallery page in the given language.
func (a *App) Page(lang language.Tag) templ.Component {
	head := layout.Group(
		layout.Meta("viewport", "width=device-width, initial-scale=1, shrink-to-fit=no"),
		layout.Title(a.Config.AppName),
		layout.CSS(a.Config.StylesheetURL),
	)
	body := layout.Group(
		layout.ErrorBoundary(Gallery(a.demos), func(err error) templ.Component {
			log.Printf("dsfr: render gallery: %v", err)
			return templ.Raw(`<p class="fr-error-text">` + templ.EscapeString(err.Error()) + `</p>`)
		}),
		layout.Script(a.Config.ScriptURL, true),
	)
	return layout.Page(lang.String(), head, body)
}

// RenderStatic writes the gallery page without a server, as a static build would.
func (a *App) RenderStatic(ctx context.Context, w io.Writer, lang language.Tag) error {
	return a.Page(lang).Render(i18n.WithLang(ctx, lang), w)
}

// Listen starts the HTTP server on Config.Addr.
func (a *App) Listen() error {
	log.Printf("dsfr: listening on %s", a.Config.Addr)
	return a.Fiber.Listen(a.Config.Addr)
}

// Shutdown stops the server and the translation watcher.
func (a *App) Shutdown() error {
	err := a.Fiber.Shutdown()
	if a.watcher != nil {
		if cerr := a.watcher.Close(); cerr != nil && err == nil {
			err = cerr
		}
		a.wg.Wait()
	}
	return err
}

// watchTranslations reloads the translations file on change. The directory is
// watched because editors often replace the file instead of writing it.
func (a *App) watchTranslations() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch translations: %w", err)
	}
	path := filepath.Clean(a.Config.TranslationsFile)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch translations: %w", err)
	}
	a.watcher = watcher

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := i18n.LoadFile(path); err != nil {
					log.Printf("dsfr: reload translations: %v", err)
					continue
				}
				log.Printf("dsfr: reloaded translations from %s", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("dsfr: translations watcher: %v", err)
			}
		}
	}()
	return nil
}
