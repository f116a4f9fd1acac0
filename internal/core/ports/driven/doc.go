// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ChatBackend: The remote section chat service (start, message, result)
//   - KeyValueStore: Session storage of string values under string keys
//   - ConfigStore: Application configuration
//   - ResumeExporter: Renders the resume document in an output format
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
