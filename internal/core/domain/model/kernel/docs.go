// Package kernel contains shared domain primitives used across aggregates.
// Currently this is the UUID value object, which wraps github.com/google/uuid
// with validation and immutability guarantees.
package kernel
