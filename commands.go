package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"
	"github.com/valyala/fasthttp"
	"gopkg.in/yaml.v3"

	"coffee-engine/internal/config"
	"coffee-engine/internal/costschedule"
	"coffee-engine/internal/engine"
	"coffee-engine/internal/handler"
	"coffee-engine/internal/logging"
	"coffee-engine/internal/model"
	"coffee-engine/internal/report"
)

type app struct {
	configFiles  []string
	scenarioFile string

	cfg    *config.Config
	logger arbor.ILogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "coffee-engine",
		Short:        "Coffee shop P&L and survival projections",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	rootCmd.PersistentFlags().StringSliceVarP(&a.configFiles, "config", "c", nil, "TOML config file(s), later files override earlier ones")
	rootCmd.PersistentFlags().StringVarP(&a.scenarioFile, "scenario", "s", "", "YAML, TOML or JSON scenario overlaying the defaults")

	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.computeCmd())
	rootCmd.AddCommand(a.reportCmd())
	rootCmd.AddCommand(a.defaultsCmd())
	rootCmd.AddCommand(a.schedulesCmd())

	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.LoadFromFiles(a.configFiles...)
	if err != nil {
		return err
	}
	if a.scenarioFile != "" {
		cfg.Scenario.File = a.scenarioFile
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.Logging)
	return nil
}

func (a *app) scenario() (model.ScenarioInputs, error) {
	in, err := config.LoadScenario(a.cfg.Scenario.File)
	if err != nil {
		a.logger.Error().Err(err).Str("file", a.cfg.Scenario.File).Msg("Failed to load scenario")
		return in, err
	}
	return in, nil
}

func (a *app) serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP calculation API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return a.serve()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	return cmd
}

func (a *app) serve() error {
	h := handler.New(a.logger, report.NewRenderer(a.logger), costschedule.NewRegistry(a.cfg.Schedules.URL), a.cfg.Report)
	srv := &fasthttp.Server{
		Handler:      h.HandleRequest,
		Name:         "coffee-engine",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(a.cfg.Server.Addr())
	}()

	a.logger.Info().Str("addr", a.cfg.Server.Addr()).Msg("Coffee engine starting")

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error().Err(err).Msg("Server failed")
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down")
		return srv.Shutdown()
	}
}

func (a *app) computeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the scenario and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.scenario()
			if err != nil {
				return err
			}
			res := engine.ComputeScenario(in)

			if asJSON {
				out, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("encode result: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}
			printSummary(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	var formatName, out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the business plan report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}
			in, err := a.scenario()
			if err != nil {
				return err
			}

			rc := a.cfg.Report
			doc := report.Build(engine.ComputeScenario(in), report.Options{
				Title:       rc.Title,
				Subtitle:    rc.Subtitle,
				Footer:      rc.Footer,
				Author:      rc.Author,
				Disclaimer:  rc.Disclaimer,
				GeneratedAt: time.Now(),
				Schedules:   costschedule.NewRegistry(a.cfg.Schedules.URL),
			})

			data, err := report.NewRenderer(a.logger).Render(doc, format)
			if err != nil {
				return err
			}

			if out == "" {
				out = "coffee-shop-plan" + format.Extension()
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write report %s: %w", out, err)
			}

			a.logger.Info().Str("file", out).Int("bytes", len(data)).Msg("Report written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "pdf", "Output format: pdf, md or html")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout")
	return cmd
}

func (a *app) defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default scenario as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(model.DefaultInputs()); err != nil {
				return fmt.Errorf("encode defaults: %w", err)
			}
			return enc.Close()
		},
	}
}

func (a *app) schedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "Print the reference renovation and equipment schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := costschedule.NewRegistry(a.cfg.Schedules.URL).All()
			for _, name := range costschedule.Names() {
				printSchedule(cmd.OutOrStdout(), all[name])
			}
			return nil
		},
	}
}
