// Package dynamics provides the de-esser and the log2-domain gain computer
// it is built on.
package dynamics
