package intrinsics

// AWS_ACCOUNT_ID references the account the stack is created in.
// Pseudo-parameters are predefined by CloudFormation and resolve at
// deploy time; this one conditions the flow-log delivery policy.
var AWS_ACCOUNT_ID = Ref{LogicalName: "AWS::AccountId"}
