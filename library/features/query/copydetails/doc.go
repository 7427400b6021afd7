// Package copydetails implements the lookup of one copy with its current status and holder.
package copydetails
