// Package policyrules implements the listing of the current policy rules.
//
// Rules are descriptive configuration. Nothing in the library evaluates them.
package policyrules
