// Package persist stores the application state in a local key-value store.
//
// The whole [state.AppState] is serialized to JSON and written under a single
// fixed key ([StateKey]) after every change. On startup the same key is read
// back; missing or malformed data yields [state.Default] so the application
// always starts.
//
// Three [Store] backends are available: one file per key in the data
// directory (the default), a SQLite table, and Redis.
//
// Usage:
//
//	store, err := persist.Open(ctx, persist.Options{Backend: "file", DataDir: dir})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	s, result := persist.LoadState(ctx, store, persist.StateKey)
//	if result.Reason != nil {
//	    logger.Warn("state reset to defaults", "reason", result.Reason)
//	}
//	ctrl := state.NewController(s, state.WithSaver(persist.NewStateWriter(store, persist.StateKey)))
package persist
