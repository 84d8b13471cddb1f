package cmd

import (
	"context"
	"errors"
	"io/fs"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minish/core"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/ttylog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	verbose  bool
	pathList string
	eventLog string
	record   string

	// exitCode is the status the process exits with once the shell ends.
	exitCode int
)

func loadConfig(fsys afero.Fs) (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(fsys, cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// applyFlags overrides configuration values with any flags that were set.
func applyFlags(cmd *cobra.Command, cfg *config.Configuration) {
	if cmd.Flags().Changed("path") {
		cfg.Path = pathList
	}
	if cmd.Flags().Changed("event-log") {
		cfg.EventLog = eventLog
	}
}

func newDiagnosticLogger(cmd *cobra.Command) *log.Logger {
	if verbose {
		return log.New(cmd.ErrOrStderr(), "[minish] ", 0)
	}
	return log.New(ioutil.Discard, "", 0)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minish",
	Short: "A minimal interactive command shell",
	Long: `minish reads command lines, runs the builtins exit, echo, and type, and
executes any other command found on the search path, printing its output
once it completes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		osFs := afero.NewOsFs()
		cfg, err := loadConfig(osFs)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		appLogger := newDiagnosticLogger(cmd)

		searchPath := cfg.Path
		if searchPath == "" {
			searchPath = os.Getenv("PATH")
		}
		resolver := core.NewResolver(osFs, core.ParseSearchPath(searchPath))
		appLogger.Printf("search path: %s", resolver.SearchPath())

		var events logger.Recorder = logger.NopRecorder{}
		if cfg.EventLog != "" {
			logFd, err := cfg.OpenEventLog()
			if err != nil {
				return err
			}
			defer logFd.Close()
			events = logger.NewJsonLinesLogRecorder(logFd).NewSession()
			appLogger.Printf("logging events to: %s", cfg.EventLog)
		}

		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
		if record != "" {
			recordFd, err := osFs.OpenFile(record, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
			if err != nil {
				return err
			}
			defer recordFd.Close()
			recorder := ttylog.NewRecorder(ttylog.NewAsciicastLogSink(recordFd), appLogger)
			stdout = recorder.Writer(ttylog.StreamStdout, stdout)
			stderr = recorder.Writer(ttylog.StreamStderr, stderr)
			appLogger.Printf("recording session to: %s", record)
		}

		isTerminal := readline.DefaultIsTerminal()
		input, err := core.NewReadline(cmd.InOrStdin(), stdout, stderr, isTerminal, resolver)
		if err != nil {
			return err
		}
		defer input.Close()

		shell := &core.Shell{
			Input:      input,
			Stdout:     stdout,
			Stderr:     stderr,
			Resolver:   resolver,
			Runner:     &core.ExecRunner{},
			Config:     cfg,
			Log:        appLogger,
			Events:     events,
			IsTerminal: isTerminal,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
		defer stop()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt)
		defer signal.Stop(sigs)
		go func() {
			for {
				select {
				case <-sigs:
					if !shell.Interrupt() {
						appLogger.Println("interrupt ignored while a command is running")
					}
				case <-ctx.Done():
					return
				}
			}
		}()

		exitCode = shell.Run(ctx)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory, built-in defaults are used if empty")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&eventLog, "event-log", "", "append session events to this file")
	rootCmd.Flags().StringVar(&record, "record", "", "record the session transcript to this asciicast file")
	rootCmd.Flags().StringVar(&pathList, "path", "", "search path for commands, defaults to $PATH")
}
