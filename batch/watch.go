package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is how long a file must stay unchanged before it is
// converted again.
const DefaultWatchDebounce = 500 * time.Millisecond

// Watch converts inputs again whenever they change, until ctx is done.
// Directories are watched rather than files so that editors which save by
// renaming are noticed too. Conversion failures are logged and do not
// stop watching.
func Watch(ctx context.Context, inputs []string, opts Options, debounce time.Duration) error {
	logger := opts.logger()
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string) // absolute path -> input as given
	dirs := make(map[string]bool)
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		watched[abs] = in
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	logger.Printf("watching %d file(s)", len(watched))

	pending := make(map[string]bool)
	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			in, ok := watched[abs]
			if !ok {
				continue
			}
			// write, create and rename cover editors that save atomically
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending[in] = true

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(debounce)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			for _, in := range inputs {
				if !pending[in] {
					continue
				}
				if err := ConvertFile(in, opts); err != nil {
					logger.Printf("%v", err)
				}
			}
			pending = make(map[string]bool)
			debounceTimer = nil
			debounceCh = nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch: %v", err)
		}
	}
}
