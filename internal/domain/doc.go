// Package domain defines the core business entities of the catalog
// (services, their versions, and the authenticated identity) along with
// the domain errors shared across the application.
package domain
