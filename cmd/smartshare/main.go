// Package main provides the SmartShare side-panel application. It opens a
// web page, extracts its readable text, and drives an interactive
// summarize-and-share workflow in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	appconfig "github.com/smartshare/panel/pkg/config"
	"github.com/smartshare/panel/pkg/content"
	"github.com/smartshare/panel/pkg/engine"
	"github.com/smartshare/panel/pkg/executor/tui"
	"github.com/smartshare/panel/pkg/extract"
	"github.com/smartshare/panel/pkg/history"
	"github.com/smartshare/panel/pkg/logging"
	"github.com/smartshare/panel/pkg/panel"
	"github.com/smartshare/panel/pkg/session"
	"github.com/smartshare/panel/pkg/storage"
	"github.com/smartshare/panel/pkg/tokens"
)

const version = "2.1.0"

// Config holds the application configuration.
type Config struct {
	PageURL     string
	UseBrowser  bool
	ShowVersion bool
}

func main() {
	flags := parseFlags()

	if flags.ShowVersion {
		fmt.Printf("SmartShare v%s\n", version)
		return
	}

	if err := flags.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, flags); err != nil {
		cancel()
		log.Fatalf("Application error: %v", err)
	}
}

func parseFlags() *Config {
	flags := &Config{}

	flag.StringVar(&flags.PageURL, "url", "", "URL of the page to summarize")
	flag.BoolVar(&flags.UseBrowser, "browser", false, "Extract through a live browser instead of a plain fetch")
	flag.BoolVar(&flags.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "SmartShare - summarize a web page and share it\n\n")
		fmt.Fprintf(os.Stderr, "Usage: smartshare -url <page> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY        API key for the summarization engine\n")
		fmt.Fprintf(os.Stderr, "  SMARTSHARE_CONFIG     Path to a YAML configuration file\n")
		fmt.Fprintf(os.Stderr, "  SMARTSHARE_MODEL      Override the summarization model\n")
		fmt.Fprintf(os.Stderr, "  SMARTSHARE_ENDPOINT   Override the engine endpoint\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  smartshare -url https://example.com/article\n")
		fmt.Fprintf(os.Stderr, "  smartshare -url https://example.com/article -browser\n")
	}

	flag.Parse()
	return flags
}

func (c *Config) validate() error {
	if c.PageURL == "" {
		return fmt.Errorf("a page URL is required (use -url)")
	}
	if _, err := url.Parse(c.PageURL); err != nil {
		return fmt.Errorf("invalid page URL: %w", err)
	}
	return nil
}

func run(ctx context.Context, flags *Config) error {
	cfg := appconfig.Load()

	logger, err := logging.NewLogger("main")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logger.Close()
	logger.Infof("SmartShare v%s starting for %s", version, flags.PageURL)

	validator, err := content.NewValidator(cfg.Denylist)
	if err != nil {
		return fmt.Errorf("compiling denylist: %w", err)
	}

	hist, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}

	prefs, err := appconfig.NewPrefsStore("")
	if err != nil {
		return fmt.Errorf("opening preferences store: %w", err)
	}
	settings := prefs.Load(cfg.Defaults.Settings())

	sessionStore := storage.NewSessionStore()
	defer sessionStore.Close()

	messenger, cleanup, err := buildMessenger(flags, cfg, sessionStore, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	gateway := extract.NewMessagingGateway(messenger, sessionStore, logger)

	eng := engine.NewOpenAIEngine(cfg.Engine.APIKey,
		engine.WithModel(cfg.Engine.Model),
		engine.WithBaseURL(cfg.Engine.Endpoint),
		engine.WithWarmupRequired(cfg.Engine.WarmupRequired),
	)

	controller := panel.NewController(validator, gateway, session.NewManager(eng, logger), hist, logger,
		panel.WithSessionStorage(sessionStore),
		panel.WithEstimator(tokens.NewEstimator()),
		panel.WithPrefs(prefs),
		panel.WithSettings(settings),
	)

	return tui.NewExecutor(controller, settings).Run(ctx)
}

// buildMessenger picks the extraction path: a live browser page when asked
// for, a plain HTTP fetch otherwise. In browser mode every page load pushes
// freshly extracted text into the session store, so user navigation reaches
// the panel without a new extraction request.
func buildMessenger(flags *Config, cfg appconfig.Config, store *storage.SessionStore, logger *logging.Logger) (extract.Messenger, func(), error) {
	if !flags.UseBrowser {
		return extract.NewHTTPMessenger(flags.PageURL, nil), func() {}, nil
	}

	browser := extract.NewBrowser(logger, extract.WithHeadless(cfg.Browser.HeadlessEnabled()))
	if err := browser.Initialize(); err != nil {
		return nil, nil, fmt.Errorf("initializing browser: %w", err)
	}
	browser.WatchPageLoads(store)
	if err := browser.Open(flags.PageURL); err != nil {
		browser.Close()
		return nil, nil, fmt.Errorf("opening page: %w", err)
	}
	return browser.Messenger(), func() { browser.Close() }, nil
}
