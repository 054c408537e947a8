package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grenas405/meta-documentation/internal/projectconfig"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

// loadWorkspace detects the workspace from the current directory and loads
// the project config found along the way. Most commands start here.
func loadWorkspace() (*workspace.Context, *projectconfig.ProjectConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, nil, err
	}
	ctx, err := workspace.DetectContext(wd, workspace.WithDecisionsDir(cfg.Paths.Decisions))
	if err != nil {
		return nil, nil, fmt.Errorf("detecting workspace: %w", err)
	}
	return ctx, cfg, nil
}

// requireDecisionLog is loadWorkspace for commands that cannot run without
// an existing decisions directory.
func requireDecisionLog() (*workspace.Context, *projectconfig.ProjectConfig, error) {
	ctx, cfg, err := loadWorkspace()
	if err != nil {
		return nil, nil, err
	}
	if ctx.Type != workspace.ContextDecisionLog {
		return nil, nil, fmt.Errorf("no decisions directory found; run `metadoc init` first")
	}
	return ctx, cfg, nil
}

// resolveUnderRoot resolves a config-relative path against the workspace
// root. Absolute paths and empty strings pass through.
func resolveUnderRoot(ctx *workspace.Context, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ctx.Root, path)
}
