/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go opens the catalog and hands it to extensions.
//
// Extensions register their commands from init() but are only initialised
// when a command that needs the catalog runs. The service is created once
// and shared through the extension Context.

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jpl-au/facet/extension"
	"github.com/jpl-au/facet/internal/config"
	"github.com/jpl-au/facet/internal/engine"
	"github.com/jpl-au/facet/internal/log"
)

// noStoreCommands lists commands that bypass automatic catalog opening.
// Built from the bootstrap commands plus extension-declared storeless
// commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip catalog
// opening: bootstrap commands that must work before "facet init", plus
// commands extensions declare through extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
		"help":   true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *engine.Service
	initOnce   sync.Once
	initErr    error
)

// openService opens the catalog named by --db, in --dir when given or by
// walking up from the working directory otherwise.
func openService() (*engine.Service, error) {
	if d := Dir(); d != "" {
		return engine.NewIn(d, DB())
	}
	return engine.New(DB())
}

// initExtensions opens the catalog service once per process and injects it
// into every Initializable extension.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := openService()
		if err != nil {
			initErr = fmt.Errorf("opening catalog: %w", err)
			return
		}
		extService = svc

		log.SetProject(filepath.Dir(svc.DBPath()))

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, svc.DB(), cfg)
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// Service opens the shared catalog service on demand. Storeless commands
// that need the catalog only on some paths, such as import without
// --dry-run, call it instead of opening their own. Execute closes it.
func Service() (*engine.Service, error) {
	if err := initExtensions(); err != nil {
		return nil, err
	}
	return extService, nil
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
