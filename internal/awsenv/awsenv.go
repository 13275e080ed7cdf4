// Package awsenv resolves deploy-environment facts the planner leaves
// symbolic: the account id (otherwise an ${AWS::AccountId} Sub) and the
// availability zone names (otherwise Fn::GetAZs selections).
//
// The planner itself never touches AWS; this package backs the CLI's
// --resolve flag only.
package awsenv

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSAPI is the slice of the STS client the resolver uses.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// EC2API is the slice of the EC2 client the resolver uses.
type EC2API interface {
	DescribeAvailabilityZones(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error)
}

// Resolver answers account and zone questions against live APIs.
type Resolver struct {
	sts STSAPI
	ec2 EC2API
}

// NewResolver builds a resolver from explicit API clients.
func NewResolver(stsAPI STSAPI, ec2API EC2API) *Resolver {
	return &Resolver{sts: stsAPI, ec2: ec2API}
}

// Options selects the AWS profile and region for resolution.
type Options struct {
	Profile string
	Region  string
}

// Load builds a resolver from the ambient AWS configuration with
// optional profile and region overrides.
func Load(ctx context.Context, opts Options) (*Resolver, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewResolver(sts.NewFromConfig(cfg), ec2.NewFromConfig(cfg)), nil
}

// AccountID returns the caller's account id.
func (r *Resolver) AccountID(ctx context.Context) (string, error) {
	out, err := r.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("GetCallerIdentity: %w", err)
	}
	return aws.ToString(out.Account), nil
}

// AvailabilityZones returns the first count available zone names in the
// region, in the region's own order.
func (r *Resolver) AvailabilityZones(ctx context.Context, count int) ([]string, error) {
	out, err := r.ec2.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("state"), Values: []string{"available"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeAvailabilityZones: %w", err)
	}

	var zones []string
	for _, az := range out.AvailabilityZones {
		zones = append(zones, aws.ToString(az.ZoneName))
	}
	if len(zones) < count {
		return nil, fmt.Errorf("region has %d availability zones, topology needs %d", len(zones), count)
	}
	return zones[:count], nil
}
