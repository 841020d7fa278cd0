// Package jotter is the composition root for jotter, a small note keeper.
//
// Notes live in a single persistence slot: one JSON array behind a core.Store.
// The default adapter writes a JSON file (optionally versioned with git);
// bbolt and SQLite adapters are available for hosts that prefer a database.
//
// Usage:
//
//	svc, err := jotter.New("./data",
//		jotter.WithAdapter(jotter.AdapterBolt),
//		jotter.WithLogger(logger),
//	)
//	defer svc.Close()
//
//	note, err := svc.Create(ctx, "Buy milk", "todo")
//	matches, err := svc.Search(ctx, jotter.Criteria{Search: "milk"})
package jotter
