package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"focustrack/internal/bootstrap"
	reportinadapter "focustrack/internal/modules/report/adapter/in"
	"focustrack/internal/platform/config"
	"focustrack/internal/platform/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir   string
	config    string
	logLevel  string
	logStderr bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "focustrack",
		Short:         "Pomodoro focus timer with distraction tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default <user-config-dir>/focustrack)")
	root.PersistentFlags().StringVar(&flags.config, "config", "", "settings file (default <data-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: trace|debug|info|warn|error")
	root.PersistentFlags().BoolVar(&flags.logStderr, "log-stderr", false, "mirror logs to stderr")

	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newRunCmd(&flags))
	root.AddCommand(newSessionsCmd(&flags))
	root.AddCommand(newReportCmd(&flags))
	root.AddCommand(newHooksCmd(&flags))
	root.AddCommand(newConfigCmd(&flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	dataDir := flags.dataDir
	if dataDir == "" {
		var err error
		if dataDir, err = config.DefaultDataDir(); err != nil {
			return config.Config{}, err
		}
	}
	return config.New(dataDir, flags.config)
}

// loadApp wires the application. The returned func closes it and the log file.
func loadApp(flags *globalFlags) (*bootstrap.App, func(), error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Settings.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	logger, logCloser, err := logging.New(logging.Options{Level: level, Path: cfg.LogPath(), Stderr: flags.logStderr})
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	return app, func() {
		app.Close()
		_ = logCloser.Close()
	}, nil
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focustrack terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer closeApp()
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}

func newSessionsCmd(flags *globalFlags) *cobra.Command {
	sessions := &cobra.Command{Use: "sessions", Short: "Session log commands"}

	sessions.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer closeApp()
			records, err := app.SessionCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions recorded")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d min\t%d distractions\t%s\n",
					r.Date.Format("2006-01-02 15:04"), r.Category, r.DurationSeconds/60, r.Distractions, r.ID)
			}
			return nil
		},
	})

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear sessions without --yes")
			}
			app, closeApp, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer closeApp()
			if err := app.SessionCLI.Clear(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sessions cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	sessions.AddCommand(clearCmd)
	return sessions
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	var format, into string
	var recent int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recorded focus time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer closeApp()

			if into != "" {
				out, err := app.ReportCLI.WriteNote(cmd.Context(), into, recent)
				if err != nil {
					return err
				}
				verb := "updated"
				if out.Created {
					verb = "created"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, out.Path)
				return nil
			}

			parsed, err := reportinadapter.ParseFormat(format)
			if err != nil {
				return err
			}
			styled, width := stdoutTerminal()
			text, err := app.ReportCLI.Render(cmd.Context(), parsed, recent, styled, width)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
			if !strings.HasSuffix(text, "\n") {
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text|json|markdown")
	cmd.Flags().IntVar(&recent, "recent", 5, "number of recent sessions to include")
	cmd.Flags().StringVar(&into, "into", "", "write the report into a managed block of this markdown note")
	return cmd
}

// stdoutTerminal reports whether stdout is a terminal and its width.
func stdoutTerminal() (bool, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return false, 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return true, 0
	}
	return true, width
}

func newHooksCmd(flags *globalFlags) *cobra.Command {
	hooks := &cobra.Command{Use: "hooks", Short: "Session hook plugins"}
	hooks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List hook manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer closeApp()
			infos, err := app.HookCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hooks configured")
				return nil
			}
			for _, h := range infos {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tenabled=%t\tevents=%s\t%s\n",
					h.Name, h.Version, h.Enabled, strings.Join(h.Events, ","), h.Binary)
			}
			return nil
		},
	})
	hooks.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check hook checksums and plugin handshakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeApp, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer closeApp()
			results, err := app.HookCLI.Doctor(cmd.Context())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hooks configured")
				return nil
			}
			failed := 0
			for _, r := range results {
				status := "ok"
				if !r.ChecksumValid || !r.BinaryReachable || !r.LifecycleOK {
					status = "fail"
					failed++
				}
				line := fmt.Sprintf("%s\t%s\tchecksum=%t\tbinary=%t\tlifecycle=%t", r.Name, status, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					line += "\terror=" + r.Error
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if failed > 0 {
				return fmt.Errorf("%d hook(s) failed checks", failed)
			}
			return nil
		},
	})
	return hooks
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Settings file commands"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			raw, err := yaml.Marshal(cfg.Settings)
			if err != nil {
				return fmt.Errorf("marshal settings: %w", err)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "# data dir: %s\n# config:   %s\n# log:      %s\n# hooks:    %s\n", cfg.DataDir, cfg.ConfigPath, cfg.LogPath(), cfg.HooksPath())
			if cfg.Settings.Store == config.StoreSQLite {
				_, _ = fmt.Fprintf(out, "# database: %s\n", cfg.DBPath)
			}
			_, _ = out.Write(raw)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.ConfigPath)
			}
			if err := config.Save(cfg.ConfigPath, config.DefaultSettings()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.ConfigPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")
	cfgCmd.AddCommand(initCmd)
	return cfgCmd
}
