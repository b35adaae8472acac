// Package pkg provides the libraries behind sysgraph.
//
// # Overview
//
// Sysgraph constructs named systems lazily, records the dependencies they
// declare, and destroys them in reverse dependency order. The pkg directory
// is organized bottom-up:
//
//  1. [digraph] - directed graph bookkeeping and dependency-ordered walks
//  2. [systems] - the Manager that owns systems and drives teardown
//  3. [components] - systems a host plugs in (settings, logging, metrics, redis, mongo, http)
//  4. [config] - TOML/YAML host configuration
//  5. [errors], [observability], [buildinfo] - shared infrastructure
//
// # Architecture
//
//	entrypoint calls systems.Load(m, Kind)
//	         ↓
//	    prerequisites loaded first, recursively
//	         ↓
//	    instance registered, edges recorded in digraph
//	         ↓
//	    m.Close(): digraph reverse walk, Destroy on each system
//
// # Quick Start
//
//	m := systems.New()
//	defer m.Close()
//
//	srv, err := systems.Load(m, components.HTTP)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("listening on", srv.Addr())
//
// [digraph]: github.com/matzehuels/sysgraph/pkg/digraph
// [systems]: github.com/matzehuels/sysgraph/pkg/systems
// [components]: github.com/matzehuels/sysgraph/pkg/components
// [config]: github.com/matzehuels/sysgraph/pkg/config
// [errors]: github.com/matzehuels/sysgraph/pkg/errors
// [observability]: github.com/matzehuels/sysgraph/pkg/observability
// [buildinfo]: github.com/matzehuels/sysgraph/pkg/buildinfo
package pkg
