// Package domain defines the state models and contracts shared across the app.
// It contains plain types (persisted state) and interfaces only.
package domain
