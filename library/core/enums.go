package core

import (
	"slices"
)

type DemandLevel string

const (
	DemandLow      DemandLevel = "low"
	DemandMedium   DemandLevel = "medium"
	DemandHigh     DemandLevel = "high"
	DemandCritical DemandLevel = "critical"
)

// CopyStatus is the position of a copy in the copy status machine.
type CopyStatus string

const (
	CopyAvailable CopyStatus = "available"
	CopyIssued    CopyStatus = "issued"
	CopyReserved  CopyStatus = "reserved"
	CopyDamaged   CopyStatus = "damaged"
	CopyMissing   CopyStatus = "missing"
	CopyArchived  CopyStatus = "archived"
)

var copyStatuses = []CopyStatus{CopyAvailable, CopyIssued, CopyReserved, CopyDamaged, CopyMissing, CopyArchived}

func (s CopyStatus) IsValid() bool {
	return slices.Contains(copyStatuses, s)
}

type CopyCondition string

const (
	ConditionNew      CopyCondition = "new"
	ConditionGood     CopyCondition = "good"
	ConditionWorn     CopyCondition = "worn"
	ConditionDamaged  CopyCondition = "damaged"
	ConditionUnusable CopyCondition = "unusable"
)

var copyConditions = []CopyCondition{ConditionNew, ConditionGood, ConditionWorn, ConditionDamaged, ConditionUnusable}

func (c CopyCondition) IsValid() bool {
	return slices.Contains(copyConditions, c)
}

type TransactionType string

const (
	TransactionIssue   TransactionType = "issue"
	TransactionReturn  TransactionType = "return"
	TransactionRenewal TransactionType = "renewal"
)

type TransactionStatus string

const (
	TransactionActive    TransactionStatus = "active"
	TransactionCompleted TransactionStatus = "completed"
	TransactionOverdue   TransactionStatus = "overdue"
)

type Role string

const (
	RoleReader    Role = "reader"
	RoleLibrarian Role = "librarian"
	RoleStudent   Role = "student"
	RoleAdmin     Role = "admin"
)

var roles = []Role{RoleReader, RoleLibrarian, RoleStudent, RoleAdmin}

func (r Role) IsValid() bool {
	return slices.Contains(roles, r)
}

type MemberStatus string

const (
	MemberActive    MemberStatus = "active"
	MemberSuspended MemberStatus = "suspended"
	MemberPending   MemberStatus = "pending"
)

type Tier string

const (
	TierNormal     Tier = "normal"
	TierPrivileged Tier = "privileged"
	TierRestricted Tier = "restricted"
)

type RequestType string

const (
	RequestBookAcquisition RequestType = "book_acquisition"
	RequestUserEnrollment  RequestType = "user_enrollment"
)

func (t RequestType) IsValid() bool {
	return t == RequestBookAcquisition || t == RequestUserEnrollment
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// IsTerminal reports whether a request in this status can no longer be resolved.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestApproved || s == RequestRejected
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type FineReason string

const (
	FineLateReturn FineReason = "late_return"
	FineDamage     FineReason = "damage"
	FineLoss       FineReason = "loss"
)

type FineStatus string

const (
	FineUnpaid FineStatus = "unpaid"
	FinePaid   FineStatus = "paid"
	FineWaived FineStatus = "waived"
)
