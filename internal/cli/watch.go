package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/restgen/restgen/internal/scaffold"
	"github.com/restgen/restgen/pkg/errors"
)

// WatchOptions configures the watch behavior.
type WatchOptions struct {
	Poll     bool          // Use polling instead of OS events
	Interval time.Duration // Debounce/poll interval
}

// DefaultWatchOptions returns the default watch options.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		Poll:     false,
		Interval: 500 * time.Millisecond,
	}
}

// Watch regenerates the project from the configuration file's models
// mapping whenever the file changes.
func Watch(ctx context.Context, opts GlobalOptions, wopts WatchOptions) error {
	s, err := openSession(ctx, opts, false)
	if err != nil {
		return err
	}
	defer s.Close()

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = DefaultConfigFile
	}
	absConfigPath, err := filepath.Abs(configPath)
	if err != nil {
		return errors.Wrap(err, "resolving config path")
	}

	printWatchBanner(configPath, s.config.Paths.Output)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Println("\n\nStopping watch...")
			cancel()
		case <-ctx.Done():
		}
	}()

	w := &watcher{session: s, configPath: absConfigPath}
	w.regenerate(ctx)

	fmt.Printf("[%s] Watching for changes...\n", timestamp())

	if wopts.Poll {
		return w.poll(ctx, wopts.Interval)
	}
	return w.notify(ctx, wopts.Interval)
}

// watcher serializes regeneration runs.
type watcher struct {
	session    *session
	configPath string
	mu         sync.Mutex
}

// notify uses OS-level file system events.
func (w *watcher) notify(ctx context.Context, interval time.Duration) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer fsw.Close()

	// Editors often replace the file, so watch its directory
	if err := fsw.Add(filepath.Dir(w.configPath)); err != nil {
		return errors.Wrap(err, "watching directory")
	}

	// No rerun may start once notify returns and the session closes
	debounce := newDebouncer(interval)
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isConfigEvent(event, w.configPath) {
				continue
			}

			// Debounce rapid changes
			debounce.Trigger(func() {
				w.handleChange(ctx)
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.session.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// poll uses file modification time polling.
func (w *watcher) poll(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastMod time.Time
	if info, err := os.Stat(w.configPath); err == nil {
		lastMod = info.ModTime()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			info, err := os.Stat(w.configPath)
			if err != nil {
				continue
			}
			if !info.ModTime().Equal(lastMod) {
				lastMod = info.ModTime()
				w.handleChange(ctx)
			}
		}
	}
}

// isConfigEvent reports whether event wrote or created the config file.
func isConfigEvent(event fsnotify.Event, configPath string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	absPath, _ := filepath.Abs(event.Name)
	return absPath == configPath
}

func (w *watcher) handleChange(ctx context.Context) {
	fmt.Printf("[%s] Change detected: %s\n", timestamp(), filepath.Base(w.configPath))
	w.session.logger.Info("config changed", zap.String("file", w.configPath))

	w.regenerate(ctx)
	fmt.Printf("[%s] Watching for changes...\n", timestamp())
}

// regenerate reloads the configuration and generates the project from its
// models mapping. Errors are printed and watching continues.
func (w *watcher) regenerate(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	config, err := LoadConfig(w.configPath)
	if err != nil {
		w.session.ui.Error(err)
		return
	}
	w.session.config = config

	project := w.session.project(false, false)
	if _, err := project.Generate(ctx, scaffold.ConfigFileParams{Models: config.Models}); err != nil {
		w.session.ui.Error(err)
	}
}

// printWatchBanner prints the startup banner.
func printWatchBanner(configPath, outputDir string) {
	fmt.Println()
	fmt.Println("restgen watch")
	fmt.Printf("   Watching: %s\n", configPath)
	fmt.Printf("   Output:   %s\n", outputDir)
	fmt.Println()
	fmt.Println("   Press Ctrl+C to stop")
	fmt.Println()
}

// timestamp returns the current time formatted for logging.
func timestamp() string {
	return time.Now().Format("15:04:05")
}
