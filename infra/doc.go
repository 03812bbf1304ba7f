// Package infra groups the technical adapters of the planning service:
// MQTT site discovery, metrics exporters and decision store backends.
// Adapters depend only on interfaces declared in the core packages.
package infra
