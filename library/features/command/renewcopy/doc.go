// Package renewcopy implements the Renew Copy use case.
//
// The holder of an issued copy keeps it for another loan period. The copy status does not change;
// a "renewal" ledger entry with the new due date is written for the current holder.
package renewcopy
