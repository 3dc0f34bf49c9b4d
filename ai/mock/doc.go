// Package mock provides test doubles for the ai interfaces.
//
// The mock embedder produces deterministic vectors from an FNV hash of the
// input text, so similarity-dependent tests are reproducible without a
// network service. The mock generator replays scripted stream fragments and
// can inject failures mid-stream.
package mock
