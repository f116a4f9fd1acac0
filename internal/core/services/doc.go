// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The section chat runner lives here: it applies events to the pure
// domain.ChatState machine and performs the effects it returns.
package services
