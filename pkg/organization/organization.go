// Package organization resolves the AWS Organizations hierarchy into a
// mapping of category labels to account IDs.
package organization

import (
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/organizations"

	"github.com/operator-framework/ou-cost-category/pkg/util/slice"
)

const (
	// RootLabel is the label of accounts without an OU parent, including
	// accounts whose parent chain was broken.
	RootLabel = "Root"

	// DefaultSeparator joins OU names into a label.
	DefaultSeparator = "-"
)

// API is the subset of the Organizations API used to walk the hierarchy.
// *organizations.Organizations satisfies it.
type API interface {
	ListAccountsPagesWithContext(aws.Context, *organizations.ListAccountsInput, func(*organizations.ListAccountsOutput, bool) bool, ...request.Option) error
	ListParentsWithContext(aws.Context, *organizations.ListParentsInput, ...request.Option) (*organizations.ListParentsOutput, error)
	DescribeOrganizationalUnitWithContext(aws.Context, *organizations.DescribeOrganizationalUnitInput, ...request.Option) (*organizations.DescribeOrganizationalUnitOutput, error)
}

// Structure maps a category label to the IDs of the accounts assigned to it.
type Structure map[string][]string

// Labels returns the labels of s in lexicographic order.
func (s Structure) Labels() []string {
	return slice.SortedKeys(s)
}

// AccountCount returns the number of accounts across all labels.
func (s Structure) AccountCount() int {
	n := 0
	for _, accounts := range s {
		n += len(accounts)
	}
	return n
}

// Empty reports whether no label has any account.
func (s Structure) Empty() bool {
	return s.AccountCount() == 0
}

// Assignment records how a single account was labelled.
type Assignment struct {
	AccountID string
	// Path holds the OU names from the root to the account's parent.
	Path  []string
	Label string
	// Truncated is set when OU levels below depth were dropped from Label.
	Truncated bool
	// Broken is set when the parent chain ended before reaching the root.
	Broken bool
	// Unexpected is set when the walk stopped at a parent that was neither
	// an OU nor the root.
	Unexpected bool
}

// Label derives the category label for path truncated at depth. It also
// reports whether any path components were dropped.
func Label(path []string, depth int, separator string) (string, bool) {
	if len(path) == 0 {
		return RootLabel, false
	}
	return strings.Join(slice.Head(path, depth), separator), len(path) > depth
}
