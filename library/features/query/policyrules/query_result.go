package policyrules

import (
	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
)

// RuleSet is the ordered list of rules that were added and not removed since.
type RuleSet struct {
	Rules          []core.Rule
	Count          int
	SequenceNumber eventstore.MaxSequenceNumberUint
}
