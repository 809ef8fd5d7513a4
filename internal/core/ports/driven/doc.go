// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Adapter: describes one national registry and maps its records
//   - Downloader: performs registry HTTP calls
//   - ConfigStore: application configuration and per-registry credentials
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ResponseCache: response caching; without it every fetch hits the wire
//
// Per-adapter capabilities (CompanyDetailer, CompanyPersonser,
// PersonSearcher, PersonDetailer, EmbeddedPersonser, Transliterator) are
// discovered by type assertion; an adapter implements only the phases its
// registry has.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or registry package
package driven
