// Package domain defines the core domain types and interfaces.
//
// Shared types and cross-cutting interfaces only, no implementation code.
// Keeping interfaces on the consumer side prevents circular imports.
package domain
