// Package mock provides test doubles for the ai interfaces. The mocks
// are deterministic by default and allow behavior injection through
// function fields, so enrichment logic can be tested without network
// access.
package mock
