package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/coilsim/internal/queue"
	"github.com/olivier-w/coilsim/internal/recipe"
	"github.com/olivier-w/coilsim/internal/timeline"
	"github.com/olivier-w/coilsim/internal/ui"
	"go.uber.org/zap"
)

type simOptions struct {
	log   *zap.SugaredLogger
	watch bool
}

// buildSimulationModel loads the recipes named by args into a queue and
// returns a model simulating the first one. With no args the default spring
// is used. A single recipe is queued together with its sibling recipes.
func buildSimulationModel(args []string, opts simOptions) (ui.Model, error) {
	q, err := buildQueue(args)
	if err != nil {
		return ui.Model{}, err
	}
	if opts.log != nil {
		opts.log.Infow("recipes queued", "count", q.Len(), "current", q.Current().Name)
	}
	s := timeline.New(timeline.WithLogger(opts.log))
	return ui.New(s, q, opts.log, opts.watch), nil
}

func buildQueue(args []string) (*queue.Queue, error) {
	switch len(args) {
	case 0:
		return queue.FromRecipes(recipe.Default()), nil
	case 1:
		r, err := loadRecipe(args[0])
		if err != nil {
			return nil, err
		}
		if q := siblingQueue(r); q != nil {
			return q, nil
		}
		return queue.FromRecipes(r), nil
	}

	rs := make([]*recipe.Recipe, len(args))
	for i, path := range args {
		r, err := loadRecipe(path)
		if err != nil {
			return nil, err
		}
		rs[i] = r
	}
	return queue.FromRecipes(rs...), nil
}

func loadRecipe(path string) (*recipe.Recipe, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !recipe.IsRecipeExt(ext) {
		return nil, fmt.Errorf("unsupported format %s (supported: %s)", ext, recipe.SupportedExtsList())
	}
	return recipe.Load(path)
}

// siblingQueue queues every recipe in r's directory with r active. Siblings
// stay Pending until selected. Returns nil if fewer than 2 recipes are found.
func siblingQueue(r *recipe.Recipe) *queue.Queue {
	absPath, err := filepath.Abs(r.Path)
	if err != nil {
		return nil
	}
	files, err := recipe.Scan(filepath.Dir(absPath))
	if err != nil || len(files) < 2 {
		return nil
	}

	entries := make([]queue.Entry, len(files))
	startIdx := -1
	for i, f := range files {
		entries[i] = queue.Entry{
			Name:  strings.TrimSuffix(filepath.Base(f), filepath.Ext(f)),
			Path:  f,
			State: queue.Pending,
		}
		if f == absPath {
			startIdx = i
		}
	}
	if startIdx < 0 {
		return nil
	}
	q := queue.New(entries)
	q.SetCurrentIndex(startIdx)
	q.SetRecipe(startIdx, r)
	return q
}
