// Package removerule implements removing a rule from the Policy Rule Set.
package removerule
