package approval

import (
	"github.com/Scaleupapp-nirpeksh/projectX/internal/domain/record"
)

// Engine derives the approvers a record must collect from the
// organization's rules. It is stateless and safe for concurrent use.
type Engine struct{}

// NewEngine creates a new approval rule engine
func NewEngine() *Engine {
	return &Engine{}
}

// RequiredApprovers evaluates every rule against the record and unions
// the approvers of the rules whose conditions all hold. Inactive rules
// are skipped. The result may be empty, in which case the record needs
// no approval.
func (e *Engine) RequiredApprovers(rec *record.FinanceRecord, rules []ApprovalRule) record.ApproverSet {
	required := record.ApproverSet{}
	for i := range rules {
		rule := &rules[i]
		if !rule.Active {
			continue
		}
		if !MatchAllConditions(rule.Conditions, rec) {
			continue
		}
		for _, approver := range rule.RequiredApprovers {
			required = required.Add(approver)
		}
	}
	return required
}
