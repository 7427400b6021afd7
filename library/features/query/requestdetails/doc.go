// Package requestdetails implements the lookup of one request with its current status.
package requestdetails
