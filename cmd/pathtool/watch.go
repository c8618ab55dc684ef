package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-path/internal/config"
	"github.com/Faultbox/midgard-path/internal/editor"
	"github.com/Faultbox/midgard-path/internal/logger"
	"github.com/Faultbox/midgard-path/pkg/roadpath"
)

func cmdWatch(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	output := fs.String("o", "", "Output OBJ file (default: <path>.obj)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pathtool watch [-o out.obj] <path>")
	}
	file := fs.Arg(0)
	out := *output
	if out == "" {
		out = file[:len(file)-len(filepath.Ext(file))] + ".obj"
	}

	p, err := roadpath.Load(file)
	if err != nil {
		return err
	}
	ed := editor.New(p, editorOptions(cfg))
	if err := writeOBJFile(ed.Mesh(), out); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s, writing %s (Ctrl+C to stop)\n", file, out)
	return watchPath(ctx, file, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, func() {
		reload(ed, file, out)
	})
}

// watchPath calls onChange after file is written, created or renamed into
// place, at most once per debounce window. It returns when ctx is done.
func watchPath(ctx context.Context, file string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by renaming a temp file, so watch the directory.
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(file), err)
	}
	name := filepath.Clean(file)

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func reload(ed *editor.Editor, file, out string) {
	p, err := roadpath.Load(file)
	if err != nil {
		// Keep the last good mesh while the file is mid-edit.
		logger.Warn("reload failed", zap.String("file", file), zap.Error(err))
		return
	}
	ed.SetPath(p)
	if err := writeOBJFile(ed.Mesh(), out); err != nil {
		logger.Error("writing mesh failed", zap.String("file", out), zap.Error(err))
		return
	}
	mesh := ed.Mesh()
	logger.Info("mesh rebuilt",
		zap.String("file", out),
		zap.Int("revision", ed.Revision()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))
}
