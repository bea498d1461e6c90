package costcategory

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/costexplorer"
	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"

	awsutil "github.com/operator-framework/ou-cost-category/pkg/aws"
)

var (
	ErrEmptyName = errors.New("cost category name cannot be empty")
	// ErrNoAction means a plan reached submission without a create or
	// update decision.
	ErrNoAction = errors.New("internal error determining cost category action")
)

// Plan is a validated definition together with the decision of how to
// submit it.
type Plan struct {
	Decision   Decision
	Definition Definition
}

// Payload is the request that will be sent for the plan, in a form suitable
// for rendering.
type Payload struct {
	Action          Action        `json:"action"`
	Name            string        `json:"name,omitempty"`
	CostCategoryArn string        `json:"costCategoryArn,omitempty"`
	RuleVersion     string        `json:"ruleVersion"`
	DefaultValue    string        `json:"defaultValue"`
	EffectiveStart  string        `json:"effectiveStart"`
	Rules           []PayloadRule `json:"rules"`
}

type PayloadRule struct {
	Value    string   `json:"value"`
	Accounts []string `json:"accounts"`
}

func (p *Plan) Payload() Payload {
	payload := Payload{
		Action:          p.Decision.Action,
		Name:            p.Decision.Name,
		CostCategoryArn: p.Decision.Arn,
		RuleVersion:     RuleVersion,
		DefaultValue:    p.Definition.DefaultValue,
		EffectiveStart:  p.Definition.EffectiveStart,
		Rules:           make([]PayloadRule, 0, len(p.Definition.Rules)),
	}
	for _, rule := range p.Definition.Rules {
		if rule == nil {
			continue
		}
		accountIDs, _ := ruleAccounts(rule)
		payload.Rules = append(payload.Rules, PayloadRule{
			Value:    aws.StringValue(rule.Value),
			Accounts: accountIDs,
		})
	}
	return payload
}

// Reconciler creates the cost category if it does not exist yet, and
// replaces its rules otherwise.
type Reconciler struct {
	logger  log.FieldLogger
	api     API
	locator *Locator
}

func NewReconciler(logger log.FieldLogger, api API) *Reconciler {
	return &Reconciler{
		logger:  logger,
		api:     api,
		locator: NewLocator(logger, api),
	}
}

// Plan looks up the existing definition and validates the rule quotas. No
// mutating call is made.
func (r *Reconciler) Plan(ctx context.Context, def Definition) (*Plan, error) {
	if def.Name == "" {
		return nil, ErrEmptyName
	}
	arn, found, err := r.locator.Find(ctx, def.Name)
	if err != nil {
		return nil, err
	}
	decision := CreateDecision(def.Name)
	if found {
		decision = UpdateDecision(arn)
	}

	if err := ValidateRules(r.logger, def.Rules); err != nil {
		return nil, err
	}
	return &Plan{Decision: decision, Definition: def}, nil
}

// Apply plans def and submits it.
func (r *Reconciler) Apply(ctx context.Context, def Definition) (*Result, error) {
	plan, err := r.Plan(ctx, def)
	if err != nil {
		return nil, err
	}
	return r.Submit(ctx, plan)
}

// Submit performs the create or update call chosen by the plan. Errors are
// not retried; a failed call leaves the remote definition unchanged.
func (r *Reconciler) Submit(ctx context.Context, plan *Plan) (*Result, error) {
	def := plan.Definition
	logger := r.logger.WithFields(log.Fields{
		"costCategory": def.Name,
		"action":       plan.Decision.Action,
	})
	logger.Infof("calling Cost Explorer API with %d rules, default value %q, effective start %s", len(def.Rules), def.DefaultValue, def.EffectiveStart)

	switch plan.Decision.Action {
	case ActionUpdate:
		input := &costexplorer.UpdateCostCategoryDefinitionInput{
			CostCategoryArn: aws.String(plan.Decision.Arn),
			RuleVersion:     aws.String(RuleVersion),
			Rules:           def.Rules,
			DefaultValue:    aws.String(def.DefaultValue),
			EffectiveStart:  aws.String(def.EffectiveStart),
		}
		logger.Debugf("update parameters:\n%s", spew.Sdump(input))
		logger.Infof("updating existing cost category %s", plan.Decision.Arn)
		out, err := r.api.UpdateCostCategoryDefinitionWithContext(ctx, input)
		if err != nil {
			return nil, awsutil.NewRequestError(awsutil.ServiceCostExplorer, "UpdateCostCategoryDefinition", plan.Decision.Arn, err)
		}
		result := &Result{Action: ActionUpdate, Arn: aws.StringValue(out.CostCategoryArn), EffectiveStart: aws.StringValue(out.EffectiveStart)}
		logger.Infof("successfully updated cost category, ARN: %s, effective start: %s", result.Arn, result.EffectiveStart)
		return result, nil
	case ActionCreate:
		input := &costexplorer.CreateCostCategoryDefinitionInput{
			Name:           aws.String(plan.Decision.Name),
			RuleVersion:    aws.String(RuleVersion),
			Rules:          def.Rules,
			DefaultValue:   aws.String(def.DefaultValue),
			EffectiveStart: aws.String(def.EffectiveStart),
		}
		logger.Debugf("create parameters:\n%s", spew.Sdump(input))
		logger.Infof("creating new cost category %s", plan.Decision.Name)
		out, err := r.api.CreateCostCategoryDefinitionWithContext(ctx, input)
		if err != nil {
			return nil, awsutil.NewRequestError(awsutil.ServiceCostExplorer, "CreateCostCategoryDefinition", plan.Decision.Name, err)
		}
		result := &Result{Action: ActionCreate, Arn: aws.StringValue(out.CostCategoryArn), EffectiveStart: aws.StringValue(out.EffectiveStart)}
		logger.Infof("successfully created cost category, ARN: %s, effective start: %s", result.Arn, result.EffectiveStart)
		return result, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoAction, plan.Decision.Action)
	}
}
