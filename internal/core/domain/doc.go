// Package domain defines the core business entities for resumechat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SectionKind: One of the five resume sections a chat can collect
//   - Credentials and Session: Who is talking to the chat service
//   - ResumeDocument: The assembled resume and its section records
//   - ChatState: The section chat workflow as an explicit state machine
//   - Progress: Server-reported completion of the active section
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
