// Package events defines the event types published on the internal bus
// while a planning query moves through the strategy chain.
package events
