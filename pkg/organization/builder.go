package organization

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/organizations"
	log "github.com/sirupsen/logrus"

	awsutil "github.com/operator-framework/ou-cost-category/pkg/aws"
)

const progressInterval = 100

var ErrInvalidDepth = errors.New("depth must be an integer >= 1")

// Result is the output of a structure build.
type Result struct {
	Structure   Structure
	Assignments []Assignment
	CacheHits   int
	CacheMisses int
}

// Truncated returns the number of accounts whose label dropped OU levels.
func (r *Result) Truncated() int {
	n := 0
	for _, a := range r.Assignments {
		if a.Truncated {
			n++
		}
	}
	return n
}

// Broken returns the number of accounts assigned to the root because their
// parent chain was broken.
func (r *Result) Broken() int {
	n := 0
	for _, a := range r.Assignments {
		if a.Broken {
			n++
		}
	}
	return n
}

// Unexpected returns the number of accounts whose walk stopped at a parent
// of an unknown type.
func (r *Result) Unexpected() int {
	n := 0
	for _, a := range r.Assignments {
		if a.Unexpected {
			n++
		}
	}
	return n
}

// Builder groups every account in the organization by category label.
type Builder struct {
	logger    log.FieldLogger
	api       API
	separator string
	cache     *NameCache
}

func NewBuilder(logger log.FieldLogger, api API) *Builder {
	return &Builder{
		logger:    logger,
		api:       api,
		separator: DefaultSeparator,
		cache:     NewNameCache(),
	}
}

// WithSeparator overrides the string used to join OU names into a label.
func (b *Builder) WithSeparator(separator string) *Builder {
	b.separator = separator
	return b
}

// Build resolves every account's OU path and assigns the account to the
// label made of the first depth OU names. The returned structure always
// contains RootLabel.
func (b *Builder) Build(ctx context.Context, depth int) (*Result, error) {
	if depth < 1 {
		return nil, ErrInvalidDepth
	}
	logger := b.logger.WithField("depth", depth)
	logger.Infof("fetching organization structure, assigning accounts to the deepest path up to depth %d", depth)

	b.cache.Reset()
	resolver := NewResolver(b.logger, b.api, b.cache)

	accountIDs, err := b.listAccounts(ctx)
	if err != nil {
		return nil, err
	}
	logger.Infof("found %d accounts", len(accountIDs))

	result := &Result{
		Structure:   make(Structure),
		Assignments: make([]Assignment, 0, len(accountIDs)),
	}
	if len(accountIDs) == 0 {
		logger.Warnf("no accounts found in the organization")
	}

	total := len(accountIDs)
	for i, accountID := range accountIDs {
		if n := i + 1; n%progressInterval == 0 || n == total {
			logger.Infof("processing account %d/%d: %s", n, total, accountID)
		} else {
			logger.Debugf("processing account %d/%d: %s", n, total, accountID)
		}

		path, err := resolver.ResolvePath(ctx, accountID)
		if err != nil {
			return nil, err
		}

		label, truncated := Label(path.OUs, depth, b.separator)
		logger.WithFields(log.Fields{
			"accountID":      accountID,
			"label":          label,
			"effectiveDepth": len(path.OUs),
		}).Debugf("assigned account, path: %s", strings.Join(path.OUs, " -> "))

		result.Structure[label] = append(result.Structure[label], accountID)
		result.Assignments = append(result.Assignments, Assignment{
			AccountID:  accountID,
			Path:       path.OUs,
			Label:      label,
			Truncated:  truncated,
			Broken:     path.Broken,
			Unexpected: path.Unexpected,
		})
	}

	if _, ok := result.Structure[RootLabel]; !ok {
		result.Structure[RootLabel] = []string{}
	}
	result.CacheHits, result.CacheMisses = b.cache.Stats()

	logger.WithFields(log.Fields{
		"cacheHits":   result.CacheHits,
		"cacheMisses": result.CacheMisses,
		"truncated":   result.Truncated(),
		"broken":      result.Broken(),
		"unexpected":  result.Unexpected(),
	}).Infof("final structure has %d categories: %v", len(result.Structure), result.Structure.Labels())
	return result, nil
}

func (b *Builder) listAccounts(ctx context.Context) ([]string, error) {
	b.logger.Infof("listing all accounts in the organization")
	var accountIDs []string
	err := b.api.ListAccountsPagesWithContext(ctx, &organizations.ListAccountsInput{}, func(out *organizations.ListAccountsOutput, lastPage bool) bool {
		for _, account := range out.Accounts {
			accountIDs = append(accountIDs, aws.StringValue(account.Id))
		}
		return true
	})
	if err != nil {
		return nil, awsutil.NewRequestError(awsutil.ServiceOrganizations, "ListAccounts", "", err)
	}
	return accountIDs, nil
}
