// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DataStore: Whole-snapshot persistence of documents, insights and alerts
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These are only needed for file ingestion:
//
//   - Normaliser: Transforms raw file bytes into a document draft
//   - NormaliserRegistry: Selects the appropriate normaliser
//   - Inbox: Streams file changes from a watched upload folder
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
