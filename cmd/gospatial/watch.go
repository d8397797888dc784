package main

import (
	"io"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/philipparndt/gospatial/internal/loader"
	"github.com/philipparndt/gospatial/pkg/analysis"
	"github.com/philipparndt/gospatial/pkg/watcher"
	"github.com/spf13/cobra"
)

func (a *app) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Print model information whenever the model changes",
		Long: `Print the model information and print it again every time the file, or
for OpenSCAD models any used or included file, changes. Runs until
interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			l := loader.New(".", a.cfg.OpenSCADPath)

			fw, err := watcher.NewFileWatcher(a.cfg.WatchDebounce)
			if err != nil {
				return err
			}
			defer fw.Close()

			var mu sync.Mutex
			var reload func(string)
			report := func() error {
				mu.Lock()
				defer mu.Unlock()

				model, err := a.loadModel(cmd, path)
				if err != nil {
					return err
				}
				deps, err := l.Dependencies(path)
				if err != nil {
					return err
				}
				if err := fw.Watch(deps, reload); err != nil {
					return err
				}
				r := analysis.AnalyzeModel(model)
				return a.print(cmd, r, func(w io.Writer) {
					printReport(w, path, r)
				})
			}
			reload = func(changed string) {
				logs.WithTag("file", changed).Info("reloading model")
				if err := report(); err != nil {
					logs.Warn(err)
				}
			}

			if err := report(); err != nil {
				return err
			}
			logs.WithTag("file", path).Info("watching for changes")
			fw.Run(cmd.Context())
			return nil
		},
	}
}
