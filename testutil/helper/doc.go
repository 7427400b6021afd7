// Package helper provides spies for the observability interfaces, used across test packages.
package helper
