package main

import (
	"context"
	"data-visualizer/internal/app"
	"data-visualizer/internal/domain"
	"data-visualizer/internal/infrastructure"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session carries what every command needs after flags are parsed.
type session struct {
	configPath string
	logger     *zap.Logger
	config     *domain.Config
}

func newRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "visualizer",
		Short:         "Generates bar charts, line graphs and scatter plots from point data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s.logger != nil {
				_ = s.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&s.configPath, "config", "config.yaml", "Path to config file")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("type", "", "Visualization type (bar_chart, line_graph, scatter_plot)")
	root.PersistentFlags().String("title", "", "Chart title")
	root.PersistentFlags().Int("width", 0, "Chart width in pixels")
	root.PersistentFlags().Int("height", 0, "Chart height in pixels")
	root.PersistentFlags().String("input", "", "Input file with x y columns")

	root.AddCommand(s.renderCmd(), s.watchCmd(), s.statsCmd())
	return root
}

func (s *session) init(cmd *cobra.Command) error {
	bootstrap := initLogger("info")

	reader := infrastructure.NewYAMLConfigReader(bootstrap)
	config, err := reader.ReadConfig(s.configPath)
	if err != nil {
		bootstrap.Error("Failed to read config", zap.Error(err))
		return err
	}
	if err := reader.ApplyFlags(config, cmd.Flags()); err != nil {
		return err
	}

	s.config = config
	s.logger = initLogger(config.LogLevel, config.LogFile)
	return nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("output-dir", "", "Directory for rendered files")
	cmd.Flags().StringSlice("format", nil, "Output formats (svg, png, json, txt, term)")
	cmd.Flags().Int("workers", 0, "Number of export workers")
	cmd.Flags().String("svg-backend", "", "SVG backend (template, chart)")
	cmd.Flags().Int("decimals", 4, "Decimal places in txt output")
}

func (s *session) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the visualization once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.render(cmd.Context(), cmd.OutOrStdout())
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func (s *session) watchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render whenever the input file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.config.Input == "" {
				return errors.New("watch needs an input file")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if err := s.render(ctx, out); err != nil {
				s.logger.Error("Initial render failed", zap.Error(err))
			}

			watcher, err := infrastructure.NewWatcher(s.logger, s.config.Input, debounce, func(path string) error {
				s.logger.Info("Input changed, rendering", zap.String("file", path))
				return s.render(ctx, out)
			})
			if err != nil {
				return err
			}
			s.logger.Info("Watching input", zap.String("file", s.config.Input))
			return watcher.Run(ctx)
		},
	}
	addOutputFlags(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "Wait this long after the last change")
	return cmd
}

func (s *session) statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a summary and a histogram of the Y values",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := s.loadSource(cmd.Context())
			if err != nil {
				return err
			}
			points := source.Data()
			out := cmd.OutOrStdout()

			summary := domain.Summarize(points)
			fmt.Fprintf(out, "points\t%d\n", summary.Count)
			if !summary.Bounds.Empty {
				b := summary.Bounds
				fmt.Fprintf(out, "x\t[%g, %g]\ny\t[%g, %g]\n", b.MinX, b.MaxX, b.MinY, b.MaxY)
				fmt.Fprintf(out, "mean_y\t%g\nstddev_y\t%g\n", summary.MeanY, summary.StdDevY)
			}

			hist, err := domain.Hist(points, 0, 0, s.config.HistBins)
			if err != nil {
				s.logger.Warn("Histogram skipped", zap.Error(err))
				return nil
			}
			writer := infrastructure.NewTXTWriter(s.logger, infrastructure.DecimalFmt(s.config.GetDecimals()))
			return writer.WriteHistogram(out, hist)
		},
	}
	cmd.Flags().Int("hist-bins", 0, "Number of histogram bins")
	cmd.Flags().Int("decimals", 4, "Decimal places in the histogram table")
	return cmd
}

// loadSource reads points from the SQL source when one is configured, else from the input file.
func (s *session) loadSource(ctx context.Context) (*domain.StaticSource, error) {
	if s.config.Source.Driver != "" {
		db, err := sql.Open(s.config.Source.Driver, s.config.Source.DSN)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", s.config.Source.Driver)
		}
		defer db.Close()
		return infrastructure.NewSQLSourceLoader(db, s.logger).Load(ctx, s.config.Source.Query)
	}
	if s.config.Input == "" {
		return nil, errors.New("no input file or SQL source configured")
	}
	return infrastructure.NewTXTFileReader(s.logger).ReadSource(s.config.Input)
}

func (s *session) render(ctx context.Context, out io.Writer) error {
	source, err := s.loadSource(ctx)
	if err != nil {
		return err
	}
	if s.config.XLabel != "" {
		source.XLabel = s.config.XLabel
	}
	if s.config.YLabel != "" {
		source.YLabel = s.config.YLabel
	}

	visualizer, err := app.NewVisualizerFromConfig(s.logger, s.config, source)
	if err != nil {
		return err
	}
	vis, err := visualizer.GenerateVisualization()
	if err != nil {
		return err
	}

	targets, term, err := buildTargets(s.logger, s.config)
	if err != nil {
		return err
	}

	s.logger.Info("Starting export",
		zap.Stringer("type", vis.Type()),
		zap.Int("points", vis.Len()),
		zap.Int("targets", len(targets)),
		zap.Int("workers", s.config.Workers))

	if term != nil {
		if err := term.Render(out, vis); err != nil {
			s.logger.Error("Failed to render terminal preview", zap.Error(err))
		}
	}

	exporter := app.NewExporter(s.logger, infrastructure.NewFileSink(s.logger), s.config.Workers)
	failed := 0
	for _, result := range exporter.Export(ctx, vis, targets) {
		if result.Err != nil {
			failed++
			s.logger.Error("Failed to write result",
				zap.String("file", result.Target.Path),
				zap.Error(result.Err))
			continue
		}
		s.logger.Info("Successfully written result",
			zap.String("file", result.Target.Path),
			zap.Int("bytes", result.Bytes))
	}

	if failed > 0 {
		return errors.Newf("%d of %d targets failed", failed, len(targets))
	}
	s.logger.Info("Visualization completed successfully")
	return nil
}
