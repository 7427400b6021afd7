// Package core contains the domain of the circulation engine: the entities of a library
// (books, physical copies, members, requests, policy rules), the domain events that change
// them, the error taxonomy, and the identifier generators.
//
// Everything except the book catalog is derived from domain events. A Transaction, for
// example, is not stored separately: it is the BookCopyIssued, BookCopyReturned or
// BookCopyRenewed event seen through TransactionFrom.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
