package planner

import (
	"fmt"
	"strings"

	"github.com/eliodevbr/vpcforge/intrinsics"
	"github.com/eliodevbr/vpcforge/resources/ec2"
	"github.com/eliodevbr/vpcforge/resources/s3"
)

const (
	storageClassInfrequentAccess = "STANDARD_IA"
	storageClassArchive          = "GLACIER"

	logDeliveryService = "delivery.logs.amazonaws.com"
)

// buildFlowLogs contributes traffic-log delivery: the lifecycle-managed
// bucket, its delivery policy, one VPC-wide flow log, and one flow log
// per subnet writing under a distinct prefix.
//
// The bucket is the only stateful resource in the plan, so it alone
// carries the environment's removal policy. Encryption and the
// public-access block are unconditional.
func buildFlowLogs(b *planBuilder) error {
	cfg := b.cfg
	policy := PolicyFor(cfg.Environment)

	b.addRetained(LogicalFlowLogsBucket, s3.Bucket{
		BucketName: flowLogsBucketName(cfg),
		BucketEncryption: s3.Bucket_BucketEncryption{
			ServerSideEncryptionConfiguration: []any{
				s3.Bucket_ServerSideEncryptionRule{
					ServerSideEncryptionByDefault: s3.Bucket_ServerSideEncryptionByDefault{
						SSEAlgorithm: "AES256",
					},
				},
			},
		},
		PublicAccessBlockConfiguration: s3.Bucket_PublicAccessBlockConfiguration{
			BlockPublicAcls:       true,
			BlockPublicPolicy:     true,
			IgnorePublicAcls:      true,
			RestrictPublicBuckets: true,
		},
		LifecycleConfiguration: s3.Bucket_LifecycleConfiguration{
			Rules: lifecycleRules(policy),
		},
		Tags: resourceTags(cfg,
			fmt.Sprintf("%s-vpc-flow-logs-%s", cfg.App, cfg.Environment), "FlowLogs"),
	}, policy.RemovalPolicy)

	b.add(LogicalFlowLogsBucketPolicy, s3.BucketPolicy{
		Bucket:         ref(LogicalFlowLogsBucket),
		PolicyDocument: deliveryPolicy(),
	})

	// Log delivery starts only once the bucket policy grants it, hence
	// the explicit dependency on every flow log.
	b.add(LogicalVPCFlowLog, ec2.FlowLog{
		ResourceId:         ref(LogicalVPC),
		ResourceType_:      "VPC",
		TrafficType:        "ALL",
		LogDestinationType: "s3",
		LogDestination:     attr(LogicalFlowLogsBucket, "Arn"),
		Tags: resourceTags(cfg,
			fmt.Sprintf("%s-vpc-flow-log-%s", cfg.App, cfg.Environment), "FlowLogs"),
	}, LogicalFlowLogsBucketPolicy)

	for _, s := range b.publicSubnets {
		addSubnetFlowLog(b, s, fmt.Sprintf("public-subnets/subnet-%d/", s.AZIndex+1))
	}
	for _, s := range b.privateSubnets {
		addSubnetFlowLog(b, s, fmt.Sprintf("private-subnets/subnet-%d/", s.AZIndex+1))
	}

	return nil
}

func addSubnetFlowLog(b *planBuilder, s SubnetPlan, prefix string) {
	b.add(s.LogicalName+"FlowLog", ec2.FlowLog{
		ResourceId:         ref(s.LogicalName),
		ResourceType_:      "Subnet",
		TrafficType:        "ALL",
		LogDestinationType: "s3",
		LogDestination: intrinsics.Join{
			Delimiter: "",
			Values:    []any{attr(LogicalFlowLogsBucket, "Arn"), "/" + prefix},
		},
		Tags: resourceTags(b.cfg,
			fmt.Sprintf("%s-%s-flow-log-%d-%s", b.cfg.App, s.Class, s.AZIndex+1, b.cfg.Environment),
			"FlowLogs"),
	}, LogicalFlowLogsBucketPolicy)
}

// flowLogsBucketName derives the globally unique bucket name
// <app>-vpc-flow-logs-<environment>-<accountId>. A configured literal
// account id yields a plain string; otherwise the account id is
// substituted at deploy time.
func flowLogsBucketName(cfg *NetworkConfig) any {
	prefix := strings.ToLower(fmt.Sprintf("%s-vpc-flow-logs-%s", cfg.App, cfg.Environment))
	if cfg.AccountID != "" {
		return prefix + "-" + cfg.AccountID
	}
	return intrinsics.Sub{String: prefix + "-${AWS::AccountId}"}
}

// lifecycleRules shapes the bucket's object lifecycle from the
// environment policy: always an expiry rule, plus storage-class tiering
// when the policy asks for it.
func lifecycleRules(p EnvironmentPolicy) []any {
	rules := []any{
		s3.Bucket_Rule{
			Id:               fmt.Sprintf("ExpireAfter%dDays", p.LogRetentionDays),
			Status:           "Enabled",
			ExpirationInDays: p.LogRetentionDays,
		},
	}
	if p.IATransitionDays > 0 {
		rules = append(rules, s3.Bucket_Rule{
			Id:     "ArchiveTiering",
			Status: "Enabled",
			Transitions: []any{
				s3.Bucket_Transition{
					StorageClass:     storageClassInfrequentAccess,
					TransitionInDays: p.IATransitionDays,
				},
				s3.Bucket_Transition{
					StorageClass:     storageClassArchive,
					TransitionInDays: p.ArchiveTransitionDays,
				},
			},
		})
	}
	return rules
}

// deliveryPolicy grants the flow-log delivery service write access,
// conditioned on full-control object ACLs and the stack's own account,
// plus the ACL and listing reads it performs before delivering. A final
// statement refuses any access over plain HTTP. Scoped to this bucket
// only.
func deliveryPolicy() intrinsics.PolicyDocument {
	bucketArn := attr(LogicalFlowLogsBucket, "Arn")
	objectsArn := intrinsics.Join{Delimiter: "", Values: []any{bucketArn, "/*"}}

	doc := intrinsics.NewPolicyDocument()
	doc.Statement = []any{
		intrinsics.PolicyStatement{
			Sid:       "AWSLogDeliveryWrite",
			Effect:    "Allow",
			Principal: intrinsics.ServicePrincipal{logDeliveryService},
			Action:    "s3:PutObject",
			Resource:  objectsArn,
			Condition: intrinsics.Json{
				intrinsics.StringEquals: intrinsics.Json{
					"s3:x-amz-acl":      "bucket-owner-full-control",
					"aws:SourceAccount": intrinsics.AWS_ACCOUNT_ID,
				},
			},
		},
		intrinsics.PolicyStatement{
			Sid:       "AWSLogDeliveryAclCheck",
			Effect:    "Allow",
			Principal: intrinsics.ServicePrincipal{logDeliveryService},
			Action:    []any{"s3:GetBucketAcl", "s3:ListBucket"},
			Resource:  bucketArn,
			Condition: intrinsics.Json{
				intrinsics.StringEquals: intrinsics.Json{
					"aws:SourceAccount": intrinsics.AWS_ACCOUNT_ID,
				},
			},
		},
		intrinsics.PolicyStatement{
			Sid:       "DenyInsecureTransport",
			Effect:    "Deny",
			Principal: intrinsics.AllPrincipal,
			Action:    "s3:*",
			Resource:  []any{bucketArn, objectsArn},
			Condition: intrinsics.Json{
				intrinsics.Bool: intrinsics.Json{
					"aws:SecureTransport": "false",
				},
			},
		},
	}
	return doc
}
