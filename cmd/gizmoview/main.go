// Command gizmoview is a small scene editor driven by the interactive tools
// framework: pick objects, move them with the transform gizmo and place new
// ones, with undo.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"toolsframework/internal/config"
	"toolsframework/internal/interactive"
	"toolsframework/internal/logging"
	"toolsframework/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var configPath string

	cmd := &cobra.Command{
		Use:          "gizmoview",
		Short:        "Interactive gizmo editor",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("change-tracking", interactive.UndoToExit.String(), "tool change tracking (none, undo_to_exit, full_undo_redo)")
	f.String("coordinate-system", interactive.CoordinateSystemWorld.String(), "initial gizmo coordinate system (world, local)")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	bindFlags(v, cmd, map[string]string{
		"log.level":               "log-level",
		"tools.change_tracking":   "change-tracking",
		"gizmo.coordinate_system": "coordinate-system",
		"metrics.addr":            "metrics-addr",
	})
	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	editor := NewEditor(cfg, logger)

	if cfg.Metrics.Addr != "" {
		stop, err := serveMetrics(cfg.Metrics.Addr, editor, logger)
		if err != nil {
			return err
		}
		defer stop(ctx)
	}

	prefs, ok, err := config.LoadPrefs(config.PrefsFile)
	switch {
	case err != nil:
		logger.Warn("ignoring view prefs", zap.Error(err))
	case ok:
		editor.ApplyPrefs(prefs)
	}

	logger.Info("starting gizmoview",
		zap.Int32("width", cfg.Window.Width),
		zap.Int32("height", cfg.Window.Height),
		zap.String("change_tracking", cfg.Tools.ChangeTracking),
	)
	NewApp(cfg, editor).Run()

	if err := config.SavePrefs(config.PrefsFile, editor.Prefs()); err != nil {
		logger.Warn("could not save view prefs", zap.Error(err))
	}
	return nil
}

func serveMetrics(addr string, editor *Editor, logger *zap.Logger) (func(context.Context), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}
	m.ObserveToolManager(editor.Tools.ToolManager())
	m.ObserveGizmoManager(editor.Tools.GizmoManager())
	editor.Host.History.OnCommitted.AddListener(m.TransactionCommitted)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
