package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nao1215/iconaudit/internal/checker"
	"github.com/nao1215/iconaudit/internal/config"
	"github.com/nao1215/iconaudit/internal/database"
	"github.com/nao1215/iconaudit/internal/fetcher"
	logpkg "github.com/nao1215/iconaudit/internal/log"
	"github.com/nao1215/iconaudit/internal/pipeline"
	"github.com/nao1215/iconaudit/internal/report"
	"github.com/spf13/cobra"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [base-url]...",
		Short: "Audit a site's declared icon assets",
		Long: `Audit fetches a site's declared icon assets and classifies each one.

Candidate references come from flags or from the .iconaudit config
file; iconaudit does not parse HTML or manifest documents itself.
For each candidate it checks reachability, that the image is square,
and that its pixel size matches the declared or expected size.

Examples:
  # Audit with candidates given on the command line
  iconaudit audit https://example.com \
    --favicon /favicon.ico --favicon-type image/x-icon \
    --touch-icon /apple-touch-icon.png --touch-icon-sizes 180x180 \
    --manifest-icon src=/icon-192.png,sizes=192x192,type=image/png

  # Audit several sites declared in a config file
  iconaudit audit https://example.com https://example.org

  # Write an indented JSON report to a file
  iconaudit audit --pretty -o report.json https://example.com

Configuration file (.iconaudit) example:
  sites:
    https://example.com:
      appTitle: Example
      favicon:
        href: /favicon.ico
        type: image/x-icon
      touchIcon:
        href: /apple-touch-icon.png
        sizes: 180x180
      manifest:
        name: Example App
        themeColor: "#336699"
        icons:
          - src: /icon-192.png
            sizes: 192x192
            type: image/png`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Candidate flags. When set they apply to every positional target,
	// overriding the config file entry.
	cmd.Flags().String("favicon", "", "Declared desktop favicon href")
	cmd.Flags().String("favicon-type", "", "Declared favicon type attribute")
	cmd.Flags().String("favicon-sizes", "", "Declared favicon sizes attribute (e.g. 48x48)")
	cmd.Flags().String("app-title", "", "Declared application title")
	cmd.Flags().String("touch-icon", "", "Declared Apple touch icon href")
	cmd.Flags().String("touch-icon-sizes", "", "Declared touch icon sizes attribute")
	cmd.Flags().String("manifest-name", "", "Declared web app manifest name")
	cmd.Flags().String("theme-color", "", "Declared theme color")
	cmd.Flags().String("background-color", "", "Declared background color")
	cmd.Flags().StringArray("manifest-icon", nil,
		"Declared manifest icon entry as src=...,sizes=...,type=... (repeatable)")

	// Behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout for icon fetches")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent site audits")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .iconaudit in current or home directory)")

	// Report flags
	cmd.Flags().StringP("output", "o", "",
		"Write the JSON report to the specified file path")
	cmd.Flags().BoolP("pretty", "p", false,
		"Indent the JSON report output")
	cmd.Flags().Bool("no-save", false,
		"Do not save audit results to the history database")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := logpkg.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-site candidates from the config file. An explicitly
	// specified path must exist; the default lookup may come up empty.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.PrettyPrint, err = cmd.Flags().GetBool("pretty")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args

	return cfg, nil
}

// siteCandidates merges flag-provided candidates over the config file
// entry for one site. Flags win because they are the more explicit
// request.
func siteCandidates(cmd *cobra.Command, cfg *config.Config, baseURL string) (config.SiteConfig, error) {
	site := cfg.SiteConfigs.GetSiteConfig(baseURL)

	stringFlag := func(name string) (string, error) {
		return cmd.Flags().GetString(name)
	}

	if href, err := stringFlag("favicon"); err != nil {
		return site, err
	} else if href != "" {
		site.Favicon.Href = href
	}
	if typ, err := stringFlag("favicon-type"); err != nil {
		return site, err
	} else if typ != "" {
		site.Favicon.Type = typ
	}
	if sizes, err := stringFlag("favicon-sizes"); err != nil {
		return site, err
	} else if sizes != "" {
		site.Favicon.Sizes = sizes
	}
	if title, err := stringFlag("app-title"); err != nil {
		return site, err
	} else if title != "" {
		site.AppTitle = title
	}
	if href, err := stringFlag("touch-icon"); err != nil {
		return site, err
	} else if href != "" {
		site.TouchIcon.Href = href
	}
	if sizes, err := stringFlag("touch-icon-sizes"); err != nil {
		return site, err
	} else if sizes != "" {
		site.TouchIcon.Sizes = sizes
	}
	if name, err := stringFlag("manifest-name"); err != nil {
		return site, err
	} else if name != "" {
		site.Manifest.Name = name
	}
	if color, err := stringFlag("theme-color"); err != nil {
		return site, err
	} else if color != "" {
		site.Manifest.ThemeColor = color
	}
	if color, err := stringFlag("background-color"); err != nil {
		return site, err
	} else if color != "" {
		site.Manifest.BackgroundColor = color
	}

	entries, err := cmd.Flags().GetStringArray("manifest-icon")
	if err != nil {
		return site, err
	}
	if len(entries) > 0 {
		icons := make([]config.ManifestIcon, 0, len(entries))
		for _, entry := range entries {
			icon, err := parseManifestIconFlag(entry)
			if err != nil {
				return site, err
			}
			icons = append(icons, icon)
		}
		site.Manifest.Icons = icons
	}

	return site, nil
}

// parseManifestIconFlag parses a "src=...,sizes=...,type=..." flag value.
func parseManifestIconFlag(entry string) (config.ManifestIcon, error) {
	var icon config.ManifestIcon
	for _, part := range strings.Split(entry, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			return icon, fmt.Errorf("invalid manifest icon entry %q: expected key=value pairs", entry)
		}
		switch strings.TrimSpace(key) {
		case "src":
			icon.Src = strings.TrimSpace(value)
		case "sizes":
			icon.Sizes = strings.TrimSpace(value)
		case "type":
			icon.Type = strings.TrimSpace(value)
		default:
			return icon, fmt.Errorf("invalid manifest icon entry %q: unknown key %q", entry, key)
		}
	}
	if icon.Src == "" {
		return icon, fmt.Errorf("invalid manifest icon entry %q: src is required", entry)
	}
	return icon, nil
}

// runAudit executes the audits and writes the reports.
func runAudit(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"targets", cfg.Targets,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.AuditDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Collect candidates up front so a malformed flag fails before any
	// network traffic.
	candidates := make(map[string]config.SiteConfig, len(cfg.Targets))
	for _, target := range cfg.Targets {
		site, err := siteCandidates(cmd, cfg, target)
		if err != nil {
			return err
		}
		candidates[target] = site
	}

	factory := func(baseURL string) *pipeline.Pipeline {
		site := candidates[baseURL]

		fetch := fetcher.NewHTTPFetcher(&http.Client{},
			fetcher.WithUserAgent(cfg.UserAgent),
			fetcher.WithMaxBodySize(cfg.MaxBodySize),
			fetcher.WithTimeout(cfg.Timeout),
			fetcher.WithHeaders(site.Headers),
		)

		p := pipeline.New(
			pipeline.WithLogger(logger),
			pipeline.WithContinueOnError(true),
		)
		p.AddSteps(
			pipeline.NewDesktopFaviconStep(fetch, checker.DesktopFaviconInput{
				BaseURL:      baseURL,
				Href:         site.Favicon.Href,
				DeclaredType: site.Favicon.Type,
				Sizes:        site.Favicon.Sizes,
				AppTitle:     site.AppTitle,
			}),
			pipeline.NewTouchIconStep(fetch, checker.TouchIconInput{
				BaseURL:      baseURL,
				Href:         site.TouchIcon.Href,
				Sizes:        site.TouchIcon.Sizes,
				ExpectedSize: site.TouchIconSize,
			}),
			pipeline.NewManifestIconsStep(fetch, checker.ManifestInput{
				BaseURL:         baseURL,
				Name:            site.Manifest.Name,
				ThemeColor:      site.Manifest.ThemeColor,
				BackgroundColor: site.Manifest.BackgroundColor,
				Icons:           manifestIconInputs(site.Manifest.Icons),
			}),
		)
		return p
	}

	batch := pipeline.NewBatchProcessor(factory,
		pipeline.WithBatchLogger(logger),
		pipeline.WithConcurrency(cfg.BatchSize),
	)

	reports, err := batch.Process(ctx, cfg.Targets)
	if err != nil {
		return err
	}

	writer, cleanup, err := buildReportWriter(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	exitErr := error(nil)
	for _, r := range reports {
		if db != nil {
			runID, err := db.SaveReport(ctx, r)
			if err != nil {
				logger.Error("failed to save report", "site", r.BaseURL, "error", err)
			} else {
				logger.Info("report saved", "site", r.BaseURL, "runID", runID)
			}
		}

		if _, err := writer.Write(r); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		if r.HasErrors() || r.Error != nil {
			exitErr = fmt.Errorf("audit found errors for %s", r.BaseURL)
		}
	}
	return exitErr
}

// manifestIconInputs converts config icon candidates to checker inputs.
func manifestIconInputs(icons []config.ManifestIcon) []checker.ManifestIconInput {
	inputs := make([]checker.ManifestIconInput, 0, len(icons))
	for _, icon := range icons {
		inputs = append(inputs, checker.ManifestIconInput{
			Src:   icon.Src,
			Sizes: icon.Sizes,
			Type:  icon.Type,
		})
	}
	return inputs
}

// buildReportWriter builds the JSON report writer for stdout or a file.
func buildReportWriter(cfg *config.Config) (report.Writer, func(), error) {
	var opts []report.JSONWriterOption
	if cfg.PrettyPrint {
		opts = append(opts, report.WithPrettyPrint())
	}

	if cfg.ReportFile == "" {
		return report.NewJSONWriter(os.Stdout, opts...), func() {}, nil
	}

	if dir := filepath.Dir(cfg.ReportFile); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return report.NewJSONWriter(f, opts...), func() { f.Close() }, nil
}
