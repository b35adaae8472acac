// Package components provides the systems a sysgraph host plugs into a
// [systems.Manager].
//
// Every system is described by a package-level [systems.Kind] or
// [systems.Configured] value. Entrypoints load their own prerequisites
// through the Manager, so loading [HTTP] pulls in [Settings], [Logging] and
// [Metrics] on the way:
//
//	settings  (pkg/config file)
//	logging   <- settings
//	metrics   <- logging
//	redis     <- settings, logging   (optional)
//	mongo     <- settings, logging   (optional)
//	http      <- settings, logging, metrics
//
// Each instance carries a random ID so a replaced system can be told apart
// from its predecessor in logs and HTTP responses.
//
// [Chain] is a dependency-only example used by the demo command.
package components
