package provision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	apitypes "github.com/aws/aws-sdk-go-v2/service/apigatewayv2/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"go.uber.org/zap"

	infractl "github.com/evo-uds/infractl"
	"github.com/evo-uds/infractl/internal/config"
)

const (
	payloadFormatVersion = "2.0"
	invokeAction         = "lambda:InvokeFunction"
	gatewayPrincipal     = "apigateway.amazonaws.com"
	maxPageSize          = "500"
)

// Provisioner wires configured routes onto the HTTP API.
type Provisioner struct {
	cfg config.Config
	api GatewayAPI
	fns LambdaAPI
	log *zap.Logger

	// Preview logs what would be created without mutating anything.
	Preview bool
}

// New returns a Provisioner. A nil logger disables logging.
func New(cfg config.Config, api GatewayAPI, fns LambdaAPI, log *zap.Logger) *Provisioner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provisioner{cfg: cfg, api: api, fns: fns, log: log}
}

// Provision processes every configured route in order. A failing route is
// recorded and iteration continues; succeeded+failed always equals the
// number of configured routes unless the context is cancelled. A fixed
// delay between iterations keeps the calls under the provider rate limit.
func (p *Provisioner) Provision(ctx context.Context) (*infractl.ProvisionResult, error) {
	result := &infractl.ProvisionResult{Total: len(p.cfg.Routes)}

	for i, rt := range p.cfg.Routes {
		outcome := p.ensureRoute(ctx, rt)
		if outcome.Error == "" {
			result.Succeeded++
		} else {
			result.Failed++
		}
		result.Routes = append(result.Routes, outcome)

		if i < len(p.cfg.Routes)-1 {
			if err := p.pause(ctx); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

// ensureRoute runs the integration/route/permission sequence for one
// entry. Integration or route failure marks the route failed; a
// permission failure never does.
func (p *Provisioner) ensureRoute(ctx context.Context, rt config.Route) infractl.RouteOutcome {
	outcome := infractl.RouteOutcome{Function: rt.Function, Path: rt.Path, Auth: rt.Auth}
	log := p.log.With(zap.String("function", rt.Function), zap.String("path", rt.Path))
	arn := p.cfg.FunctionArn(rt.Function)

	integrationID, integrationCreated, err := p.ensureIntegration(ctx, arn)
	if err != nil {
		log.Error("integration failed", zap.Error(err), zap.String("code", errorCode(err)))
		outcome.Error = fmt.Sprintf("integration: %v", err)
		return outcome
	}

	routeCreated, err := p.ensureRouteKey(ctx, rt, integrationID)
	if err != nil {
		// Undo an integration created this run so a failed route does
		// not leave an orphan behind. Pre-existing integrations stay.
		if integrationCreated && !p.Preview {
			if _, delErr := p.api.DeleteIntegration(ctx, &apigatewayv2.DeleteIntegrationInput{
				ApiId:         aws.String(p.cfg.APIID),
				IntegrationId: aws.String(integrationID),
			}); delErr != nil {
				log.Warn("orphan integration left behind", zap.String("integration", integrationID), zap.Error(delErr))
			} else {
				log.Info("rolled back integration", zap.String("integration", integrationID))
			}
		}
		log.Error("route failed", zap.Error(err), zap.String("code", errorCode(err)))
		outcome.Error = fmt.Sprintf("route: %v", err)
		return outcome
	}
	outcome.Created = integrationCreated || routeCreated

	if err := p.ensurePermission(ctx, rt); err != nil {
		// Best-effort by contract: the route stands even when the
		// permission grant cannot be confirmed.
		log.Warn("permission grant failed", zap.Error(err), zap.String("code", errorCode(err)))
	}

	if outcome.Created {
		log.Info("route provisioned", zap.Bool("auth", rt.Auth))
	} else {
		log.Info("route already in place", zap.Bool("auth", rt.Auth))
	}
	return outcome
}

// ensureIntegration finds the AWS_PROXY integration for the function ARN
// or creates it. Returns the integration id and whether it was created.
func (p *Provisioner) ensureIntegration(ctx context.Context, arn string) (string, bool, error) {
	out, err := p.api.GetIntegrations(ctx, &apigatewayv2.GetIntegrationsInput{
		ApiId:      aws.String(p.cfg.APIID),
		MaxResults: aws.String(maxPageSize),
	})
	if err != nil {
		return "", false, fmt.Errorf("listing integrations: %w", err)
	}
	for _, item := range out.Items {
		if aws.ToString(item.IntegrationUri) == arn {
			return aws.ToString(item.IntegrationId), false, nil
		}
	}

	if p.Preview {
		p.log.Info("preview: would create integration", zap.String("target", arn))
		return "", true, nil
	}

	created, err := p.api.CreateIntegration(ctx, &apigatewayv2.CreateIntegrationInput{
		ApiId:                aws.String(p.cfg.APIID),
		IntegrationType:      apitypes.IntegrationTypeAwsProxy,
		IntegrationUri:       aws.String(arn),
		PayloadFormatVersion: aws.String(payloadFormatVersion),
	})
	if err != nil {
		return "", false, fmt.Errorf("creating integration: %w", err)
	}
	return aws.ToString(created.IntegrationId), true, nil
}

// ensureRouteKey finds the POST route for the path or creates it bound to
// the integration. Existing routes are verified against the expected
// target and authorization; a mismatch is an error, not silently adopted.
func (p *Provisioner) ensureRouteKey(ctx context.Context, rt config.Route, integrationID string) (bool, error) {
	routeKey := "POST " + rt.Path
	target := "integrations/" + integrationID

	out, err := p.api.GetRoutes(ctx, &apigatewayv2.GetRoutesInput{
		ApiId:      aws.String(p.cfg.APIID),
		MaxResults: aws.String(maxPageSize),
	})
	if err != nil {
		return false, fmt.Errorf("listing routes: %w", err)
	}
	for _, item := range out.Items {
		if aws.ToString(item.RouteKey) != routeKey {
			continue
		}
		if integrationID != "" && aws.ToString(item.Target) != target {
			return false, fmt.Errorf("route %s targets %s, expected %s", routeKey, aws.ToString(item.Target), target)
		}
		if err := verifyAuthorization(item, rt, p.cfg.AuthorizerID); err != nil {
			return false, err
		}
		return false, nil
	}

	if p.Preview {
		p.log.Info("preview: would create route", zap.String("route", routeKey))
		return true, nil
	}

	in := &apigatewayv2.CreateRouteInput{
		ApiId:    aws.String(p.cfg.APIID),
		RouteKey: aws.String(routeKey),
		Target:   aws.String(target),
	}
	// Public routes carry no authorization fields at all.
	if rt.Auth {
		in.AuthorizationType = apitypes.AuthorizationTypeJwt
		in.AuthorizerId = aws.String(p.cfg.AuthorizerID)
	}
	if _, err := p.api.CreateRoute(ctx, in); err != nil {
		return false, fmt.Errorf("creating route: %w", err)
	}
	return true, nil
}

func verifyAuthorization(route apitypes.Route, rt config.Route, authorizerID string) error {
	if rt.Auth {
		if route.AuthorizationType != apitypes.AuthorizationTypeJwt {
			return fmt.Errorf("route %s has authorization %q, expected JWT", rt.Path, route.AuthorizationType)
		}
		if aws.ToString(route.AuthorizerId) != authorizerID {
			return fmt.Errorf("route %s uses authorizer %s, expected %s", rt.Path, aws.ToString(route.AuthorizerId), authorizerID)
		}
		return nil
	}
	if route.AuthorizationType != "" && route.AuthorizationType != apitypes.AuthorizationTypeNone {
		return fmt.Errorf("route %s has authorization %q, expected none", rt.Path, route.AuthorizationType)
	}
	return nil
}

// resourcePolicy is the subset of a Lambda resource policy needed to spot
// an existing statement.
type resourcePolicy struct {
	Statement []struct {
		Sid string `json:"Sid"`
	} `json:"Statement"`
}

// statementID derives a stable statement id from the route path so
// reruns find the grant instead of stacking timestamped duplicates.
func statementID(path string) string {
	return "apigw" + strings.ReplaceAll(path, "/", "-")
}

// ensurePermission grants the API Gateway principal invoke permission on
// the function, scoped to this API. Already-granted is success.
func (p *Provisioner) ensurePermission(ctx context.Context, rt config.Route) error {
	name := p.cfg.FunctionName(rt.Function)
	sid := statementID(rt.Path)

	policy, err := p.fns.GetPolicy(ctx, &lambda.GetPolicyInput{
		FunctionName: aws.String(name),
	})
	switch {
	case err == nil:
		var doc resourcePolicy
		if jsonErr := json.Unmarshal([]byte(aws.ToString(policy.Policy)), &doc); jsonErr == nil {
			for _, stmt := range doc.Statement {
				if stmt.Sid == sid {
					return nil
				}
			}
		}
	case isPolicyNotFound(err):
		// No resource policy yet; grant below.
	default:
		return fmt.Errorf("reading function policy: %w", err)
	}

	if p.Preview {
		p.log.Info("preview: would grant invoke permission", zap.String("function", name), zap.String("sid", sid))
		return nil
	}

	_, err = p.fns.AddPermission(ctx, &lambda.AddPermissionInput{
		FunctionName: aws.String(name),
		StatementId:  aws.String(sid),
		Action:       aws.String(invokeAction),
		Principal:    aws.String(gatewayPrincipal),
		SourceArn:    aws.String(p.cfg.SourceArn()),
	})
	if err != nil && !isConflict(err) {
		return fmt.Errorf("granting invoke permission: %w", err)
	}
	return nil
}

// pause waits the configured inter-route delay, honoring cancellation.
func (p *Provisioner) pause(ctx context.Context) error {
	delay := time.Duration(p.cfg.Delay)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
