// Package pendingrequests implements the request queue view: the pending requests of one type,
// oldest first.
package pendingrequests
