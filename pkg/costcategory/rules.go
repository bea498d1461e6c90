package costcategory

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/costexplorer"
	log "github.com/sirupsen/logrus"

	"github.com/operator-framework/ou-cost-category/pkg/util/slice"
)

// NewRule returns a rule assigning value to costs of the given linked
// accounts.
func NewRule(value string, accountIDs []string) *costexplorer.CostCategoryRule {
	return &costexplorer.CostCategoryRule{
		Value: aws.String(value),
		Rule: &costexplorer.Expression{
			Dimensions: &costexplorer.DimensionValues{
				Key:          aws.String(costexplorer.DimensionLinkedAccount),
				Values:       aws.StringSlice(slice.CopyStrings(accountIDs)),
				MatchOptions: aws.StringSlice([]string{costexplorer.MatchOptionEquals}),
			},
		},
	}
}

// CompileRules returns one rule per label with at least one account, sorted
// by label. Quota overruns are only logged here; ValidateRules enforces them
// before submission.
func CompileRules(logger log.FieldLogger, structure map[string][]string) []*costexplorer.CostCategoryRule {
	logger.Infof("building cost category rules")
	rules := []*costexplorer.CostCategoryRule{}
	for _, label := range slice.SortedKeys(structure) {
		accountIDs := structure[label]
		if len(accountIDs) == 0 {
			logger.Warnf("skipping rule for %q due to missing or empty account list", label)
			continue
		}
		if len(accountIDs) > MaxAccountsPerRule {
			logger.Warnf("category %q has %d accounts (> %d limit)", label, len(accountIDs), MaxAccountsPerRule)
		}
		rules = append(rules, NewRule(label, accountIDs))
	}
	if len(rules) > MaxRules {
		logger.Warnf("generated %d rules (> %d limit)", len(rules), MaxRules)
	}
	logger.Infof("built %d rules for categories with accounts", len(rules))
	return rules
}

// ruleAccounts returns the account IDs matched by rule. ok is false when the
// rule is not a linked account dimension rule.
func ruleAccounts(rule *costexplorer.CostCategoryRule) (accountIDs []string, ok bool) {
	if rule == nil || rule.Rule == nil || rule.Rule.Dimensions == nil {
		return nil, false
	}
	return aws.StringValueSlice(rule.Rule.Dimensions.Values), true
}
