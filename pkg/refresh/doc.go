// Package refresh keeps a swapcell cell in sync with an external source.
//
// This is the canonical production shape for a clone-replace cell: many
// long-lived readers hold snapshots of a config or routing table while one
// background refresher swaps in fresh versions.
//
//	cell := swapcell.New(Config{})
//	r := refresh.New(cell, &refresh.FileSource{Path: "config.json"},
//	    func(data []byte) (Config, error) {
//	        var c Config
//	        err := json.Unmarshal(data, &c)
//	        return c, err
//	    },
//	    refresh.WithInterval[Config](10*time.Second),
//	)
//	go r.Run(ctx)
//
// Sources report a version (ETag, modification time) so unchanged data is
// never re-decoded or re-committed. Fetch or decode failures are logged and
// leave the previous value in place; readers are never exposed to a partial
// or broken version.
package refresh
