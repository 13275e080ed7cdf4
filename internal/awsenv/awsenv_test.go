package awsenv

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type mockSTSAPI struct {
	getCallerIdentityFunc func(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

func (m *mockSTSAPI) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return m.getCallerIdentityFunc(ctx, params, optFns...)
}

type mockEC2API struct {
	describeAvailabilityZonesFunc func(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error)
}

func (m *mockEC2API) DescribeAvailabilityZones(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error) {
	return m.describeAvailabilityZonesFunc(ctx, params, optFns...)
}

func TestAccountID(t *testing.T) {
	mock := &mockSTSAPI{
		getCallerIdentityFunc: func(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
			return &sts.GetCallerIdentityOutput{
				Account: awssdk.String("123456789012"),
			}, nil
		},
	}

	r := NewResolver(mock, nil)
	id, err := r.AccountID(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "123456789012" {
		t.Fatalf("expected account id 123456789012, got %q", id)
	}
}

func TestAccountID_Error(t *testing.T) {
	mock := &mockSTSAPI{
		getCallerIdentityFunc: func(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
			return nil, errors.New("no credentials")
		},
	}

	r := NewResolver(mock, nil)
	if _, err := r.AccountID(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestAvailabilityZones(t *testing.T) {
	mock := &mockEC2API{
		describeAvailabilityZonesFunc: func(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error) {
			return &ec2.DescribeAvailabilityZonesOutput{
				AvailabilityZones: []ec2types.AvailabilityZone{
					{ZoneName: awssdk.String("us-east-1a")},
					{ZoneName: awssdk.String("us-east-1b")},
					{ZoneName: awssdk.String("us-east-1c")},
				},
			}, nil
		},
	}

	r := NewResolver(nil, mock)
	zones, err := r.AvailabilityZones(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}
	if zones[0] != "us-east-1a" || zones[1] != "us-east-1b" {
		t.Fatalf("unexpected zones: %v", zones)
	}
}

func TestAvailabilityZones_TooFew(t *testing.T) {
	mock := &mockEC2API{
		describeAvailabilityZonesFunc: func(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error) {
			return &ec2.DescribeAvailabilityZonesOutput{
				AvailabilityZones: []ec2types.AvailabilityZone{
					{ZoneName: awssdk.String("eu-north-1a")},
				},
			}, nil
		},
	}

	r := NewResolver(nil, mock)
	if _, err := r.AvailabilityZones(context.Background(), 3); err == nil {
		t.Fatal("expected error for region with too few zones")
	}
}
