package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/jotter/pkg/adapters/bolt"
	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/adapters/sqlite"
	"github.com/aretw0/jotter/pkg/core"
)

// Database file names used when the uri is a directory.
const (
	BoltFile   = "jotter.db"
	SQLiteFile = "jotter.sqlite"
)

// Init builds and initializes the store selected by the options.
// The uri is the data directory; bolt and sqlite also accept a file path.
func Init(uri string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.store != nil {
		return o.store, nil
	}

	slot, _ := o.config["slot"].(string)
	readOnly, _ := o.config["read_only"].(bool)
	path := resolvePath(uri, o)

	switch o.adapter {
	case AdapterFS:
		return initFS(path, slot, readOnly, o)
	case AdapterBolt:
		return bolt.NewStore(bolt.Config{
			Path:     dbFile(path, BoltFile),
			Slot:     slot,
			ReadOnly: readOnly,
			Logger:   o.logger,
		})
	case AdapterSQLite:
		return sqlite.NewStore(sqlite.Config{
			Path:     dbFile(path, SQLiteFile),
			Slot:     slot,
			ReadOnly: readOnly,
			Logger:   o.logger,
		})
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

func initFS(path, slot string, readOnly bool, o *options) (core.Store, error) {
	versioning, _ := o.config["versioning"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	store := fs.NewStore(fs.Config{
		Path:         path,
		Slot:         slot,
		MustExist:    mustExist,
		Versioning:   versioning,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
	if err := store.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

// Resolve reports the data path Init would open for uri under the same options,
// after dev sandbox redirection. It performs no I/O and logs nothing.
func Resolve(uri string, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	o.logger = nil
	return resolvePath(uri, o)
}

// resolvePath applies the dev sandbox rules to uri.
func resolvePath(uri string, o *options) string {
	if uri == ":memory:" {
		return uri
	}
	tempDir, _ := o.config["temp_dir"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	useTemp := tempDir || (IsDevRun() && devSafety && !readOnly)
	resolved := ResolvePath(uri, useTemp)

	if useTemp && o.logger != nil && resolved != uri {
		o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", uri, "resolved_path", resolved)
	}
	return resolved
}

// dbFile keeps explicit file paths and appends name to directories.
func dbFile(path, name string) string {
	if path == ":memory:" || filepath.Ext(path) != "" {
		return path
	}
	return filepath.Join(path, name)
}
