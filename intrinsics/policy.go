// IAM policy document types for bucket and delivery policies.
package intrinsics

import (
	"encoding/json"
)

// Json is a shorthand for map[string]any.
// Used for inline JSON objects like Condition blocks.
//
// Example:
//
//	Condition: Json{
//	    StringEquals: Json{"s3:x-amz-acl": "bucket-owner-full-control"},
//	}
type Json = map[string]any

// PolicyDocument represents an IAM policy document.
//
// Example:
//
//	PolicyDocument{
//	    Version:   "2012-10-17",
//	    Statement: []any{writeStatement, aclCheckStatement},
//	}
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// NewPolicyDocument creates a PolicyDocument with the default version.
func NewPolicyDocument() PolicyDocument {
	return PolicyDocument{Version: "2012-10-17"}
}

// PolicyStatement represents an IAM policy statement.
//
// Example:
//
//	PolicyStatement{
//	    Sid:       "AWSLogDeliveryAclCheck",
//	    Effect:    "Allow",
//	    Principal: ServicePrincipal{"delivery.logs.amazonaws.com"},
//	    Action:    []any{"s3:GetBucketAcl", "s3:ListBucket"},
//	}
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// ServicePrincipal represents a service principal
// (e.g., delivery.logs.amazonaws.com). Serializes to {"Service": ...}.
//
// Examples:
//
//	ServicePrincipal{"delivery.logs.amazonaws.com"}
//	ServicePrincipal{"ec2.amazonaws.com", "delivery.logs.amazonaws.com"}
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}

// AWSPrincipal represents an AWS account/role/user principal.
// Serializes to {"AWS": ...} format.
//
// Examples:
//
//	AWSPrincipal{"arn:aws:iam::123456789012:root"}
//	AWSPrincipal{Sub{String: "arn:${AWS::Partition}:iam::${AWS::AccountId}:root"}}
type AWSPrincipal []any

// MarshalJSON serializes to {"AWS": ...} format.
func (p AWSPrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"AWS": p[0]})
	}
	return json.Marshal(map[string]any{"AWS": []any(p)})
}

// AllPrincipal represents the wildcard principal "*".
const AllPrincipal = "*"

// IAM condition operator constants.
// Use these as keys in Condition maps to prevent typos.
const (
	StringEquals    = "StringEquals"
	StringNotEquals = "StringNotEquals"
	StringLike      = "StringLike"
	StringNotLike   = "StringNotLike"

	Bool = "Bool"

	IpAddress    = "IpAddress"
	NotIpAddress = "NotIpAddress"

	ArnEquals = "ArnEquals"
	ArnLike   = "ArnLike"

	Null = "Null"
)
