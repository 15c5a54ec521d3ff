// Package domain holds the pure conversation and catalog types shared by
// every layer: products, accumulated preferences, dialog steps and the
// per-session state. It has no dependencies on adapters or transport.
package domain
