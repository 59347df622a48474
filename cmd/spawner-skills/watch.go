package main

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vibeship/spawner-skills/pkg/logger"
	"github.com/vibeship/spawner-skills/pkg/presenter"
)

var watchCmd = &cobra.Command{
	Use:   "watch [corpus-dir]",
	Short: "Rebuild the index whenever the corpus changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		root := resolveRoot(args)

		rebuild := func() {
			result, err := buildCorpus(ctx, root)
			if err != nil {
				presenter.Error(err, "rebuild failed")
				return
			}
			presenter.Stats(corpusStats(result))
		}
		rebuild()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return errors.Wrap(err, "failed to create watcher")
		}
		defer watcher.Close()

		addDirs := func() error {
			return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil || !d.IsDir() {
					return nil
				}
				return watcher.Add(path)
			})
		}
		if err := addDirs(); err != nil {
			return errors.Wrap(err, "failed to watch corpus directories")
		}

		// Editors fire bursts of events per save; a short debounce
		// collapses them into one rebuild.
		debounce, _ := cmd.Flags().GetDuration("debounce")
		var timer *time.Timer
		timerC := make(chan struct{}, 1)

		presenter.Info("watching " + root + " for changes")
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !relevantEvent(event) {
					continue
				}
				logger.G(ctx).WithField("event", event.String()).Debug("corpus change detected")
				if event.Op.Has(fsnotify.Create) {
					// New subdirectories need their own watches.
					_ = addDirs()
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					select {
					case timerC <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.G(ctx).WithError(err).Warn("watcher error")
			case <-timerC:
				rebuild()
			}
		}
	},
}

func relevantEvent(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasSuffix(event.Name, ".md") || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Remove)
}

func init() {
	watchCmd.Flags().Duration("debounce", 500*time.Millisecond, "Delay before rebuilding after a change")
}
