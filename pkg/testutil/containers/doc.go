// Package containers starts throwaway infrastructure for integration tests.
// Everything else in it builds only with the integration tag.
package containers
