// Package costcategory builds Cost Explorer cost category rules and
// creates or replaces the cost category definition holding them.
package costcategory

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/costexplorer"
)

const (
	// MaxRules is the number of rules a cost category may hold.
	MaxRules = 500
	// MaxAccountsPerRule is the number of values a single dimension rule may
	// match.
	MaxAccountsPerRule = 1000

	// DefaultValue is assigned to costs not matched by any rule.
	DefaultValue = "Uncategorized"

	RuleVersion = costexplorer.CostCategoryRuleVersionCostCategoryExpressionV1
)

//go:generate mockgen -destination=mock/mock_api.go -package=mock github.com/operator-framework/ou-cost-category/pkg/costcategory API

// API is the subset of the Cost Explorer API used to manage cost
// categories. *costexplorer.CostExplorer satisfies it.
type API interface {
	ListCostCategoryDefinitionsWithContext(aws.Context, *costexplorer.ListCostCategoryDefinitionsInput, ...request.Option) (*costexplorer.ListCostCategoryDefinitionsOutput, error)
	CreateCostCategoryDefinitionWithContext(aws.Context, *costexplorer.CreateCostCategoryDefinitionInput, ...request.Option) (*costexplorer.CreateCostCategoryDefinitionOutput, error)
	UpdateCostCategoryDefinitionWithContext(aws.Context, *costexplorer.UpdateCostCategoryDefinitionInput, ...request.Option) (*costexplorer.UpdateCostCategoryDefinitionOutput, error)
}

// Definition is the desired state of a cost category. Rules replace the
// existing rule set wholesale.
type Definition struct {
	Name           string
	Rules          []*costexplorer.CostCategoryRule
	DefaultValue   string
	EffectiveStart string
}

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Decision says how a definition is submitted: created by name, or updated
// by ARN. Exactly one of Name and Arn is set.
type Decision struct {
	Action Action
	Name   string
	Arn    string
}

func CreateDecision(name string) Decision {
	return Decision{Action: ActionCreate, Name: name}
}

func UpdateDecision(arn string) Decision {
	return Decision{Action: ActionUpdate, Arn: arn}
}

// Result is what the service echoed back after a create or update.
type Result struct {
	Action         Action
	Arn            string
	EffectiveStart string
}
