// Package broadcast implements the order fan-out hub using the actor pattern.
//
// A single goroutine owns the subscriber set and processes commands from a channel
// (no mutexes). Each connection gets a dedicated write goroutine with a bounded
// send buffer; a subscriber whose buffer fills up is evicted rather than ever
// blocking the broadcast path.
package broadcast
