package costcategory

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/costexplorer"
	log "github.com/sirupsen/logrus"
)

// QuotaError is returned when a rule set exceeds a Cost Explorer limit.
type QuotaError struct {
	// Rule is the 1-based index of the offending rule, or 0 when the rule
	// count itself is over the limit.
	Rule  int
	Value string
	Count int
	Limit int
}

func (e *QuotaError) Error() string {
	if e.Rule == 0 {
		return fmt.Sprintf("number of rules (%d) exceeds the %d rule limit", e.Count, e.Limit)
	}
	return fmt.Sprintf("rule %d (%q) has %d accounts, exceeding the %d account limit", e.Rule, e.Value, e.Count, e.Limit)
}

// ValidateRules enforces the rule count and accounts per rule limits. Rules
// without accounts and rules that are not linked account dimension rules
// are logged and allowed through.
func ValidateRules(logger log.FieldLogger, rules []*costexplorer.CostCategoryRule) error {
	if len(rules) > MaxRules {
		err := &QuotaError{Count: len(rules), Limit: MaxRules}
		logger.Error(err.Error())
		return err
	}
	for i, rule := range rules {
		value := "N/A"
		if rule != nil && rule.Value != nil {
			value = aws.StringValue(rule.Value)
		}
		accountIDs, ok := ruleAccounts(rule)
		switch {
		case !ok:
			logger.Warnf("rule %d (%q) structure invalid for limit check", i+1, value)
		case len(accountIDs) == 0:
			logger.Warnf("rule %d (%q) has 0 accounts", i+1, value)
		case len(accountIDs) > MaxAccountsPerRule:
			err := &QuotaError{Rule: i + 1, Value: value, Count: len(accountIDs), Limit: MaxAccountsPerRule}
			logger.Error(err.Error())
			return err
		}
	}
	return nil
}
