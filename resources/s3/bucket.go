// Package s3 provides CloudFormation resource types for Amazon S3
// buckets and bucket policies.
package s3

// Bucket is an AWS::S3::Bucket resource.
type Bucket struct {
	BucketName                     any   `json:"BucketName,omitempty"`
	BucketEncryption               any   `json:"BucketEncryption,omitempty"`
	PublicAccessBlockConfiguration any   `json:"PublicAccessBlockConfiguration,omitempty"`
	VersioningConfiguration        any   `json:"VersioningConfiguration,omitempty"`
	LifecycleConfiguration         any   `json:"LifecycleConfiguration,omitempty"`
	Tags                           []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (Bucket) ResourceType() string { return "AWS::S3::Bucket" }

// Bucket_BucketEncryption configures default server-side encryption.
type Bucket_BucketEncryption struct {
	ServerSideEncryptionConfiguration []any `json:"ServerSideEncryptionConfiguration,omitempty"`
}

// Bucket_ServerSideEncryptionRule is a single encryption rule.
type Bucket_ServerSideEncryptionRule struct {
	ServerSideEncryptionByDefault any  `json:"ServerSideEncryptionByDefault,omitempty"`
	BucketKeyEnabled              bool `json:"BucketKeyEnabled,omitempty"`
}

// Bucket_ServerSideEncryptionByDefault selects the default encryption
// algorithm.
type Bucket_ServerSideEncryptionByDefault struct {
	SSEAlgorithm   string `json:"SSEAlgorithm,omitempty"`
	KMSMasterKeyID any    `json:"KMSMasterKeyID,omitempty"`
}

// Bucket_PublicAccessBlockConfiguration blocks public access to the
// bucket and its objects.
type Bucket_PublicAccessBlockConfiguration struct {
	BlockPublicAcls       bool `json:"BlockPublicAcls,omitempty"`
	BlockPublicPolicy     bool `json:"BlockPublicPolicy,omitempty"`
	IgnorePublicAcls      bool `json:"IgnorePublicAcls,omitempty"`
	RestrictPublicBuckets bool `json:"RestrictPublicBuckets,omitempty"`
}

// Bucket_VersioningConfiguration enables object versioning.
type Bucket_VersioningConfiguration struct {
	Status string `json:"Status,omitempty"`
}

// Bucket_LifecycleConfiguration holds the bucket's lifecycle rules.
type Bucket_LifecycleConfiguration struct {
	Rules []any `json:"Rules,omitempty"`
}

// Bucket_Rule is a lifecycle rule. Id is the rule name shown in the
// console; Status must be "Enabled" or "Disabled".
type Bucket_Rule struct {
	Id               string `json:"Id,omitempty"`
	Prefix           string `json:"Prefix,omitempty"`
	Status           string `json:"Status,omitempty"`
	ExpirationInDays int    `json:"ExpirationInDays,omitempty"`
	Transitions      []any  `json:"Transitions,omitempty"`
}

// Bucket_Transition moves objects to another storage class after a
// number of days.
type Bucket_Transition struct {
	StorageClass     string `json:"StorageClass,omitempty"`
	TransitionInDays int    `json:"TransitionInDays,omitempty"`
}
