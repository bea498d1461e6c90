package organization

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go/service/organizations"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsutil "github.com/operator-framework/ou-cost-category/pkg/aws"
	"github.com/operator-framework/ou-cost-category/pkg/organization/orgtest"
)

// scenarioOrganization has A1 under the root, A2 under Finance and A3 under
// Finance/Payroll.
func scenarioOrganization() *orgtest.FakeOrganization {
	org := orgtest.NewFakeOrganization()
	org.AddOU("ou-fin", "Finance", orgtest.RootID)
	org.AddOU("ou-pay", "Payroll", "ou-fin")
	org.AddAccount("A1", orgtest.RootID)
	org.AddAccount("A2", "ou-fin")
	org.AddAccount("A3", "ou-pay")
	return org
}

func TestBuild(t *testing.T) {
	tests := map[string]struct {
		org   func() *orgtest.FakeOrganization
		depth int

		expected           Structure
		expectedTruncated  int
		expectedBroken     int
		expectedUnexpected int
	}{
		"depth 1 collapses nested OUs into the top level OU": {
			org:               scenarioOrganization,
			depth:             1,
			expected:          Structure{"Root": {"A1"}, "Finance": {"A2", "A3"}},
			expectedTruncated: 1,
		},
		"depth 2 keeps the second level": {
			org:      scenarioOrganization,
			depth:    2,
			expected: Structure{"Root": {"A1"}, "Finance": {"A2"}, "Finance-Payroll": {"A3"}},
		},
		"depth beyond the deepest path does not change labels": {
			org:      scenarioOrganization,
			depth:    10,
			expected: Structure{"Root": {"A1"}, "Finance": {"A2"}, "Finance-Payroll": {"A3"}},
		},
		"zero accounts yields only an empty root label": {
			org:      orgtest.NewFakeOrganization,
			depth:    3,
			expected: Structure{"Root": {}},
		},
		"root label is present even when no account is under the root": {
			org: func() *orgtest.FakeOrganization {
				org := orgtest.NewFakeOrganization()
				org.AddOU("ou-eng", "Engineering", orgtest.RootID)
				org.AddAccount("B1", "ou-eng")
				return org
			},
			depth:    1,
			expected: Structure{"Root": {}, "Engineering": {"B1"}},
		},
		"broken chains are assigned to the root label": {
			org: func() *orgtest.FakeOrganization {
				org := scenarioOrganization()
				org.RemoveParent("ou-fin")
				return org
			},
			depth:          2,
			expected:       Structure{"Root": {"A1", "A2", "A3"}},
			expectedBroken: 2,
		},
		"cyclic chains are assigned to the root label": {
			org: func() *orgtest.FakeOrganization {
				org := scenarioOrganization()
				org.SetParent("ou-fin", "ou-pay", organizations.ParentTypeOrganizationalUnit)
				return org
			},
			depth:          2,
			expected:       Structure{"Root": {"A1", "A2", "A3"}},
			expectedBroken: 2,
		},
		"unexpected parent types keep the collected path": {
			org: func() *orgtest.FakeOrganization {
				org := scenarioOrganization()
				org.SetParent("ou-fin", "x-1", "SOMETHING_ELSE")
				return org
			},
			depth:              2,
			expected:           Structure{"Root": {"A1"}, "Finance": {"A2"}, "Finance-Payroll": {"A3"}},
			expectedUnexpected: 2,
		},
	}

	for testName, tt := range tests {
		testName := testName
		tt := tt
		t.Run(testName, func(t *testing.T) {
			logger, _ := logtest.NewNullLogger()
			builder := NewBuilder(logger, tt.org())

			result, err := builder.Build(context.Background(), tt.depth)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Structure)
			assert.Equal(t, tt.expectedTruncated, result.Truncated())
			assert.Equal(t, tt.expectedBroken, result.Broken())
			assert.Equal(t, tt.expectedUnexpected, result.Unexpected())
		})
	}
}

func TestBuildRejectsInvalidDepth(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	org := scenarioOrganization()
	builder := NewBuilder(logger, org)

	for _, depth := range []int{0, -1} {
		_, err := builder.Build(context.Background(), depth)
		assert.Equal(t, ErrInvalidDepth, err)
	}
	assert.Equal(t, 0, org.ListAccountsPages, "no remote call expected for an invalid depth")
}

func TestBuildPropagatesErrors(t *testing.T) {
	tests := map[string]struct {
		errKey     string
		expectedOp string
	}{
		"account listing": {errKey: "ListAccounts", expectedOp: "ListAccounts"},
		"parent lookup":   {errKey: "ListParents/A3", expectedOp: "ListParents"},
		"ou name lookup":  {errKey: "DescribeOrganizationalUnit/ou-pay", expectedOp: "DescribeOrganizationalUnit"},
	}

	for testName, tt := range tests {
		testName := testName
		tt := tt
		t.Run(testName, func(t *testing.T) {
			logger, _ := logtest.NewNullLogger()
			org := scenarioOrganization()
			cause := errors.New("request failed")
			org.Errors[tt.errKey] = cause

			_, err := NewBuilder(logger, org).Build(context.Background(), 2)
			require.Error(t, err)
			assert.True(t, errors.Is(err, cause))
			assert.True(t, awsutil.IsRequestError(err, tt.expectedOp))
		})
	}
}

func TestBuildClearsNameCacheBetweenRuns(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	org := scenarioOrganization()
	builder := NewBuilder(logger, org)

	first, err := builder.Build(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, Structure{"Root": {"A1"}, "Finance": {"A2"}, "Finance-Payroll": {"A3"}}, first.Structure)

	// renaming an OU between runs must be picked up by the next build
	org.AddOU("ou-fin", "FinOps", orgtest.RootID)
	second, err := builder.Build(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, Structure{"Root": {"A1"}, "FinOps": {"A2"}, "FinOps-Payroll": {"A3"}}, second.Structure)
	assert.Equal(t, 2, org.DescribeOUCalls["ou-fin"])
}

func TestBuildPartitionsAccounts(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	org := orgtest.NewFakeOrganization()
	org.PageSize = 7

	var expected []string
	for i := 0; i < 5; i++ {
		top := fmt.Sprintf("ou-%d", i)
		org.AddOU(top, fmt.Sprintf("Unit%d", i), orgtest.RootID)
		for j := 0; j < 3; j++ {
			child := fmt.Sprintf("%s-%d", top, j)
			org.AddOU(child, fmt.Sprintf("Team%d", j), top)
			for k := 0; k < 4; k++ {
				id := fmt.Sprintf("%d%d%d", i, j, k)
				org.AddAccount(id, child)
				expected = append(expected, id)
			}
		}
	}
	org.AddAccount("root-account", orgtest.RootID)
	expected = append(expected, "root-account")

	for _, depth := range []int{1, 2, 3} {
		result, err := NewBuilder(logger, org).Build(context.Background(), depth)
		require.NoError(t, err)

		var seen []string
		for _, accounts := range result.Structure {
			seen = append(seen, accounts...)
		}
		sort.Strings(seen)
		want := append([]string(nil), expected...)
		sort.Strings(want)
		assert.Equal(t, want, seen, "every account must appear exactly once at depth %d", depth)
		assert.Len(t, result.Assignments, len(expected))
		assert.Contains(t, result.Structure, RootLabel)
	}
}

func TestBuildWithSeparator(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	result, err := NewBuilder(logger, scenarioOrganization()).WithSeparator("/").Build(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Finance", "Finance/Payroll", "Root"}, result.Structure.Labels())
}
