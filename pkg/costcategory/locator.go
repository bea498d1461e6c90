package costcategory

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/costexplorer"
	log "github.com/sirupsen/logrus"

	awsutil "github.com/operator-framework/ou-cost-category/pkg/aws"
)

// Locator finds existing cost category definitions by name.
type Locator struct {
	logger log.FieldLogger
	api    API
}

func NewLocator(logger log.FieldLogger, api API) *Locator {
	return &Locator{
		logger: logger,
		api:    api,
	}
}

// Find pages through the cost category definitions and returns the ARN of
// the first one named name. Pagination stops as soon as a match is found.
func (l *Locator) Find(ctx context.Context, name string) (arn string, found bool, err error) {
	logger := l.logger.WithField("costCategory", name)
	logger.Infof("checking if cost category exists")

	var nextToken *string
	pages, definitions := 0, 0
	for {
		pages++
		logger.Debugf("listing cost category definitions, page %d", pages)
		out, err := l.api.ListCostCategoryDefinitionsWithContext(ctx, &costexplorer.ListCostCategoryDefinitionsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return "", false, awsutil.NewRequestError(awsutil.ServiceCostExplorer, "ListCostCategoryDefinitions", name, err)
		}

		for _, ref := range out.CostCategoryReferences {
			definitions++
			refName, refArn := aws.StringValue(ref.Name), aws.StringValue(ref.CostCategoryArn)
			if refName == name && refArn != "" {
				logger.Infof("found matching cost category with ARN %s", refArn)
				return refArn, true, nil
			}
		}

		if aws.StringValue(out.NextToken) == "" {
			break
		}
		nextToken = out.NextToken
	}
	logger.Infof("cost category not found after checking %d definitions across %d pages", definitions, pages)
	return "", false, nil
}
