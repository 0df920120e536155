// Package subscriptions drives the whole service over real HTTP against a
// fresh PostgreSQL database per test. Run with:
//
//	go test -tags integration ./internal/integration_tests/...
//
// Set TEST_LOG to see the application logs.
package subscriptions
