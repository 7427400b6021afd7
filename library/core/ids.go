package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Payload field names used as event store predicates.
const (
	PredicateCopyID        = "CopyID"
	PredicateBookID        = "BookID"
	PredicateTransactionID = "TransactionID"
	PredicateUserID        = "UserID"
	PredicateUsername      = "Username"
	PredicateLibraryID     = "LibraryID"
	PredicateRequestID     = "RequestID"
	PredicateRuleID        = "RuleID"
)

// MaxIDGenerationAttempts bounds the regeneration of colliding random identifiers.
const MaxIDGenerationAttempts = 5

// RandomSource is satisfied by *rand.Rand. It need not be safe for concurrent use.
type RandomSource interface {
	Intn(n int) int
}

// GenerateTransactionID returns TXN- followed by six digits.
func GenerateTransactionID(r RandomSource) TransactionIDString {
	return fmt.Sprintf("TXN-%d", 100000+r.Intn(900000))
}

// GenerateLibraryID returns LIB-<year>-<ROLE3>-<5 digits>, e.g. LIB-2026-STU-48213.
func GenerateLibraryID(role Role, year int, r RandomSource) string {
	return fmt.Sprintf("LIB-%d-%s-%d", year, RoleCode(role), 10000+r.Intn(90000))
}

// RoleCode is the upper-cased three letter prefix of a role.
func RoleCode(role Role) string {
	code := strings.ToUpper(string(role))
	if len(code) > 3 {
		code = code[:3]
	}

	return code
}

// GenerateUsername returns member_ followed by the first eight hex digits of token.
func GenerateUsername(token uuid.UUID) string {
	return "member_" + token.String()[:8]
}

// GenerateRuleID returns RULE- followed by the first eight hex digits of token.
func GenerateRuleID(token uuid.UUID) string {
	return "RULE-" + strings.ToUpper(token.String()[:8])
}
