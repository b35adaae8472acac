// Package systems owns named, lazily constructed systems and destroys them in
// dependency order.
//
// # Overview
//
// A [Manager] is a registry of live systems keyed by [Key]. Each system kind is
// described by a [Kind]: its key, the keys it requires, and a construction
// entrypoint that receives the Manager. Entrypoints load their own
// prerequisites through the Manager before building themselves, so
// construction order falls out of the call chain. The Manager records the
// declared edges in a [digraph.Graph] and uses its reverse walk to tear
// everything down.
//
// # Usage
//
//	var Config = systems.Kind[*ConfigSystem]{
//	    Key:  "config",
//	    Load: loadConfig,
//	}
//
//	var Server = systems.Kind[*ServerSystem]{
//	    Key:      "server",
//	    Requires: []systems.Key{"config"},
//	    Load: func(m *systems.Manager) (*ServerSystem, error) {
//	        cfg, err := systems.Load(m, Config)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return newServer(cfg)
//	    },
//	}
//
//	m := systems.New()
//	defer m.Close()
//	srv, err := systems.Load(m, Server)
//
// # Failure
//
// An entrypoint that returns an error leaves nothing behind: no vertex, edge or
// instance is recorded for its key, and [Load] returns the zero value with an
// error coded LOAD_FAILED. Loading a key that is already being loaded further
// up the call chain fails with DEPENDENCY_CYCLE instead of recursing forever.
//
// # Concurrency
//
// A Manager is single-threaded. It takes no locks; callers that share one
// across goroutines must serialize access themselves.
package systems
