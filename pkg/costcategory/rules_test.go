package costcategory

import (
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/costexplorer"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleValues(rules []*costexplorer.CostCategoryRule) []string {
	values := make([]string, 0, len(rules))
	for _, rule := range rules {
		values = append(values, aws.StringValue(rule.Value))
	}
	return values
}

func accountIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%04d", prefix, i)
	}
	return ids
}

func warnings(hook *logtest.Hook) int {
	n := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}

func TestNewRule(t *testing.T) {
	ids := []string{"A2", "A3"}
	rule := NewRule("Finance", ids)

	assert.Equal(t, "Finance", aws.StringValue(rule.Value))
	require.NotNil(t, rule.Rule)
	require.NotNil(t, rule.Rule.Dimensions)
	assert.Equal(t, costexplorer.DimensionLinkedAccount, aws.StringValue(rule.Rule.Dimensions.Key))
	assert.Equal(t, []string{"A2", "A3"}, aws.StringValueSlice(rule.Rule.Dimensions.Values))
	assert.Equal(t, []string{costexplorer.MatchOptionEquals}, aws.StringValueSlice(rule.Rule.Dimensions.MatchOptions))

	ids[0] = "changed"
	assert.Equal(t, "A2", aws.StringValue(rule.Rule.Dimensions.Values[0]), "rule must not alias the account list")
}

func TestCompileRules(t *testing.T) {
	tests := map[string]struct {
		structure map[string][]string

		expectedValues   []string
		expectedWarnings int
	}{
		"rules are sorted by label and include a non-empty root": {
			structure:      map[string][]string{"Root": {"A1"}, "Finance": {"A2", "A3"}},
			expectedValues: []string{"Finance", "Root"},
		},
		"empty and missing groups are skipped with a warning": {
			structure:        map[string][]string{"Root": {}, "Finance": {"A2"}, "Legal": nil},
			expectedValues:   []string{"Finance"},
			expectedWarnings: 2,
		},
		"an empty structure yields no rules": {
			structure:        map[string][]string{"Root": {}},
			expectedValues:   []string{},
			expectedWarnings: 1,
		},
		"a nil structure yields no rules": {
			structure:      nil,
			expectedValues: []string{},
		},
		"a rule over the account limit is kept with a warning": {
			structure:        map[string][]string{"Big": accountIDs("B", MaxAccountsPerRule+1)},
			expectedValues:   []string{"Big"},
			expectedWarnings: 1,
		},
	}

	for testName, tt := range tests {
		testName := testName
		tt := tt
		t.Run(testName, func(t *testing.T) {
			logger, hook := logtest.NewNullLogger()
			rules := CompileRules(logger, tt.structure)
			require.NotNil(t, rules)
			assert.Equal(t, tt.expectedValues, ruleValues(rules))
			assert.Equal(t, tt.expectedWarnings, warnings(hook))
		})
	}
}

func TestCompileRulesOverRuleLimit(t *testing.T) {
	structure := map[string][]string{}
	for i := 0; i < MaxRules+1; i++ {
		structure[fmt.Sprintf("OU%03d", i)] = []string{fmt.Sprintf("%012d", i)}
	}
	logger, hook := logtest.NewNullLogger()

	rules := CompileRules(logger, structure)
	assert.Len(t, rules, MaxRules+1, "all rules must be returned even over the limit")
	assert.Equal(t, 1, warnings(hook))
}

func TestCompileRulesIsDeterministic(t *testing.T) {
	structure := map[string][]string{
		"Root":            {"A1"},
		"Finance":         {"A2"},
		"Finance-Payroll": {"A3", "A4"},
		"Engineering":     {"A5"},
		"Sandbox":         {},
	}
	logger, _ := logtest.NewNullLogger()

	first := CompileRules(logger, structure)
	second := CompileRules(logger, structure)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Engineering", "Finance", "Finance-Payroll", "Root"}, ruleValues(first))
}
