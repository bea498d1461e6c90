package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/costexplorer"
	"github.com/aws/aws-sdk-go/service/organizations"
)

const (
	// DefaultCostExplorerRegion is the region Cost Explorer cost categories
	// are managed in. The service only has an endpoint in us-east-1.
	DefaultCostExplorerRegion = "us-east-1"
)

// Clients holds the service clients used to synchronize a cost category.
type Clients struct {
	Organizations *organizations.Organizations
	CostExplorer  *costexplorer.CostExplorer
}

// NewClients creates a shared session using the default credential chain
// and returns the Organizations and Cost Explorer clients. An empty region
// leaves the Organizations client on the session's region; an empty
// ceRegion falls back to DefaultCostExplorerRegion.
func NewClients(region, ceRegion string) (*Clients, error) {
	awsSession, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create AWS session: %w", err)
	}

	orgConfig := aws.NewConfig()
	if region != "" {
		orgConfig = orgConfig.WithRegion(region)
	}
	if ceRegion == "" {
		ceRegion = DefaultCostExplorerRegion
	}

	return &Clients{
		Organizations: organizations.New(awsSession, orgConfig),
		CostExplorer:  costexplorer.New(awsSession, aws.NewConfig().WithRegion(ceRegion)),
	}, nil
}
