package provision

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	apitypes "github.com/aws/aws-sdk-go-v2/service/apigatewayv2/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// fakeGateway records calls and serves canned integration/route listings.
type fakeGateway struct {
	integrations []apitypes.Integration
	routes       []apitypes.Route

	createIntegrationErr error
	createRouteErr       error
	getIntegrationsErr   error
	getRoutesErr         error
	deleteIntegrationErr error

	createdIntegrations []*apigatewayv2.CreateIntegrationInput
	createdRoutes       []*apigatewayv2.CreateRouteInput
	deletedIntegrations []string

	nextID int
}

func (f *fakeGateway) GetIntegrations(_ context.Context, _ *apigatewayv2.GetIntegrationsInput, _ ...func(*apigatewayv2.Options)) (*apigatewayv2.GetIntegrationsOutput, error) {
	if f.getIntegrationsErr != nil {
		return nil, f.getIntegrationsErr
	}
	return &apigatewayv2.GetIntegrationsOutput{Items: f.integrations}, nil
}

func (f *fakeGateway) CreateIntegration(_ context.Context, in *apigatewayv2.CreateIntegrationInput, _ ...func(*apigatewayv2.Options)) (*apigatewayv2.CreateIntegrationOutput, error) {
	if f.createIntegrationErr != nil {
		return nil, f.createIntegrationErr
	}
	f.createdIntegrations = append(f.createdIntegrations, in)
	f.nextID++
	id := "int" + string(rune('0'+f.nextID))
	f.integrations = append(f.integrations, apitypes.Integration{
		IntegrationId:  aws.String(id),
		IntegrationUri: in.IntegrationUri,
	})
	return &apigatewayv2.CreateIntegrationOutput{IntegrationId: aws.String(id)}, nil
}

func (f *fakeGateway) DeleteIntegration(_ context.Context, in *apigatewayv2.DeleteIntegrationInput, _ ...func(*apigatewayv2.Options)) (*apigatewayv2.DeleteIntegrationOutput, error) {
	if f.deleteIntegrationErr != nil {
		return nil, f.deleteIntegrationErr
	}
	f.deletedIntegrations = append(f.deletedIntegrations, aws.ToString(in.IntegrationId))
	return &apigatewayv2.DeleteIntegrationOutput{}, nil
}

func (f *fakeGateway) GetRoutes(_ context.Context, _ *apigatewayv2.GetRoutesInput, _ ...func(*apigatewayv2.Options)) (*apigatewayv2.GetRoutesOutput, error) {
	if f.getRoutesErr != nil {
		return nil, f.getRoutesErr
	}
	return &apigatewayv2.GetRoutesOutput{Items: f.routes}, nil
}

func (f *fakeGateway) CreateRoute(_ context.Context, in *apigatewayv2.CreateRouteInput, _ ...func(*apigatewayv2.Options)) (*apigatewayv2.CreateRouteOutput, error) {
	if f.createRouteErr != nil {
		return nil, f.createRouteErr
	}
	f.createdRoutes = append(f.createdRoutes, in)
	f.routes = append(f.routes, apitypes.Route{
		RouteKey:          in.RouteKey,
		Target:            in.Target,
		AuthorizationType: in.AuthorizationType,
		AuthorizerId:      in.AuthorizerId,
	})
	return &apigatewayv2.CreateRouteOutput{}, nil
}

// fakeLambda serves a canned resource policy and records grants.
type fakeLambda struct {
	policy string

	getPolicyErr     error
	addPermissionErr error

	permissions []*lambda.AddPermissionInput
}

func (f *fakeLambda) GetPolicy(_ context.Context, _ *lambda.GetPolicyInput, _ ...func(*lambda.Options)) (*lambda.GetPolicyOutput, error) {
	if f.getPolicyErr != nil {
		return nil, f.getPolicyErr
	}
	return &lambda.GetPolicyOutput{Policy: aws.String(f.policy)}, nil
}

func (f *fakeLambda) AddPermission(_ context.Context, in *lambda.AddPermissionInput, _ ...func(*lambda.Options)) (*lambda.AddPermissionOutput, error) {
	if f.addPermissionErr != nil {
		return nil, f.addPermissionErr
	}
	f.permissions = append(f.permissions, in)
	return &lambda.AddPermissionOutput{}, nil
}
