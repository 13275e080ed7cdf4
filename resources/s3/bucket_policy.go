package s3

// BucketPolicy is an AWS::S3::BucketPolicy resource. Bucket takes a Ref
// to the bucket; PolicyDocument accepts an intrinsics.PolicyDocument.
type BucketPolicy struct {
	Bucket         any `json:"Bucket,omitempty"`
	PolicyDocument any `json:"PolicyDocument,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (BucketPolicy) ResourceType() string { return "AWS::S3::BucketPolicy" }
