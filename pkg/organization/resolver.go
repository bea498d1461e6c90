package organization

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/organizations"
	log "github.com/sirupsen/logrus"

	awsutil "github.com/operator-framework/ou-cost-category/pkg/aws"
	"github.com/operator-framework/ou-cost-category/pkg/util/slice"
)

// Path is the result of walking an account's parent chain.
type Path struct {
	// OUs holds OU names in root-to-leaf order. It is empty for accounts
	// directly under the root and for broken chains.
	OUs []string
	// Broken is set when a chain ran out of parents before the root or
	// looped back on itself. The account is treated as a direct child of
	// the root.
	Broken bool
	// Unexpected is set when the walk stopped at a parent that was neither
	// an OU nor the root. OUs keeps what was collected up to that point.
	Unexpected bool
}

// Resolver walks the parent chain of accounts up to the organization root.
type Resolver struct {
	logger log.FieldLogger
	api    API
	cache  *NameCache
}

func NewResolver(logger log.FieldLogger, api API, cache *NameCache) *Resolver {
	if cache == nil {
		cache = NewNameCache()
	}
	return &Resolver{
		logger: logger,
		api:    api,
		cache:  cache,
	}
}

// ResolvePath returns the OU names between the root and accountID. Errors
// from the Organizations API are returned as is, wrapped in a
// *aws.RequestError; the only partial results are broken chains and
// unexpected parent types, which are flagged on the returned Path.
func (r *Resolver) ResolvePath(ctx context.Context, accountID string) (Path, error) {
	logger := r.logger.WithField("accountID", accountID)

	var names []string
	childID := accountID
	visited := map[string]bool{accountID: true}
	for {
		logger.Debugf("listing parents of %s", childID)
		out, err := r.api.ListParentsWithContext(ctx, &organizations.ListParentsInput{
			ChildId: aws.String(childID),
		})
		if err != nil {
			return Path{}, awsutil.NewRequestError(awsutil.ServiceOrganizations, "ListParents", childID, err)
		}

		if len(out.Parents) == 0 {
			if len(names) == 0 {
				logger.Debugf("account appears to be directly under the root")
				return Path{}, nil
			}
			logger.Errorf("path to root broken at %s, assigning account to %s", childID, RootLabel)
			return Path{Broken: true}, nil
		}

		parent := out.Parents[0]
		parentID, parentType := aws.StringValue(parent.Id), aws.StringValue(parent.Type)
		switch parentType {
		case organizations.ParentTypeRoot:
			return Path{OUs: slice.ReverseStrings(names)}, nil
		case organizations.ParentTypeOrganizationalUnit:
			if visited[parentID] {
				logger.Errorf("cycle in path to root at %s, assigning account to %s", parentID, RootLabel)
				return Path{Broken: true}, nil
			}
			visited[parentID] = true
			name, err := r.ouName(ctx, parentID)
			if err != nil {
				return Path{}, err
			}
			names = append(names, name)
			childID = parentID
		default:
			logger.Warnf("unexpected parent type %q for %s, stopping path traversal", parentType, childID)
			return Path{OUs: slice.ReverseStrings(names), Unexpected: true}, nil
		}
	}
}

func (r *Resolver) ouName(ctx context.Context, ouID string) (string, error) {
	if name, ok := r.cache.Get(ouID); ok {
		return name, nil
	}
	r.logger.Debugf("describing organizational unit %s", ouID)
	out, err := r.api.DescribeOrganizationalUnitWithContext(ctx, &organizations.DescribeOrganizationalUnitInput{
		OrganizationalUnitId: aws.String(ouID),
	})
	if err != nil {
		return "", awsutil.NewRequestError(awsutil.ServiceOrganizations, "DescribeOrganizationalUnit", ouID, err)
	}
	var name string
	if out.OrganizationalUnit != nil {
		name = aws.StringValue(out.OrganizationalUnit.Name)
	}
	r.cache.Set(ouID, name)
	return name, nil
}
