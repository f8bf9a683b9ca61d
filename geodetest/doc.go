/*
Package geodetest provides mocks and helpers for testing extensions.

Instead of implementing a full mocking framework, this package provides
simple doubles for the core interfaces (handlers, transactions, messages,
authentication) that are configured through their public attributes.
*/
package geodetest
