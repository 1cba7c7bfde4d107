package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/sourcegraph/conc/pool"
	"github.com/tartampluch/go-occasions/internal/bot"
	"github.com/tartampluch/go-occasions/internal/catalog"
	"github.com/tartampluch/go-occasions/internal/config"
	"github.com/tartampluch/go-occasions/internal/engine"
	"github.com/tartampluch/go-occasions/internal/server"
	"github.com/tartampluch/go-occasions/internal/worker"
)

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	configPath := flag.String(config.FlagConfig, "", config.FlagDescConfig)
	once := flag.Bool(config.FlagOnce, false, config.FlagDescOnce)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Settings & Logging
	// -------------------------------------------------------------------------
	// The level is raised or lowered once the settings file has been read.
	level := new(slog.LevelVar)
	level.Set(levelFor(*debugMode, slog.LevelInfo))
	logCloser := setupLogging(level, *debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	configured, _ := settings.SlogLevel()
	level.Set(levelFor(*debugMode, configured))

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, settings, *once, os.Stdout); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the resolver into every adapter and blocks until ctx ends or one
// of them fails. With once set it only prints the current status to out.
func run(ctx context.Context, settings *config.Settings, once bool, out io.Writer) error {
	msgs, err := catalog.New(settings.Language)
	if err != nil {
		return err
	}
	resolver, err := engine.NewResolver(engine.Options{Catalog: msgs})
	if err != nil {
		return err
	}
	clock := engine.RealClock{}

	if once {
		_, err := fmt.Fprintln(out, resolver.StatusSummary(clock.Now()))
		return err
	}

	var chat *bot.Bot
	if settings.Discord.Enabled {
		token, err := bot.ResolveToken(settings.Discord.KeyringUser)
		if err != nil {
			return err
		}
		router := bot.NewRouter(settings.Discord.Prefix, resolver, msgs)
		if chat, err = bot.New(token, router, clock); err != nil {
			return err
		}
	} else {
		slog.Info(config.MsgBotDisabled, config.LogKeyComponent, config.CompMain)
	}

	srv := server.NewOccasionServer(settings.Port, resolver, clock)
	refresher := &worker.RefreshWorker{
		Renderer: &engine.Exporter{Resolver: resolver},
		Target:   srv,
		Clock:    clock,
		Schedule: settings.RefreshCron,
	}

	// The first failing service cancels the others.
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(srv.Start)
	p.Go(refresher.Run)
	if chat != nil {
		p.Go(chat.Run)
	}

	return p.Wait()
}

// loadSettings reads path, or the default file in the user config directory
// when path is empty.
func loadSettings(path string) (*config.Settings, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrConfigDir, err)
		}
		path = filepath.Join(dir, config.AppID, config.DefaultConfigRel)
	}
	return config.LoadSettings(path)
}

// levelFor lets the debug flag override the configured level.
func levelFor(debugMode bool, configured slog.Level) slog.Level {
	if debugMode {
		return slog.LevelDebug
	}
	return configured
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog logger writing to stdout and, when
// possible, to a log file in the user cache directory.
func setupLogging(level slog.Leveler, addSource bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
