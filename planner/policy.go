package planner

// CloudFormation DeletionPolicy / UpdateReplacePolicy values.
const (
	RemovalRetain = "Retain"
	RemovalDelete = "Delete"
)

// EnvironmentPolicy is the retention stance one environment tier applies
// to stateful resources. RemovalPolicy lands on the flow-log bucket as
// its DeletionPolicy; the day counts shape the bucket's object
// lifecycle rules. A zero IATransitionDays disables storage-class
// tiering entirely.
type EnvironmentPolicy struct {
	RemovalPolicy         string
	LogRetentionDays      int
	IATransitionDays      int
	ArchiveTransitionDays int
}

// environmentPolicies maps environment tiers to their policies. Adding
// a tier is a one-line change here; every environment without an entry
// gets defaultPolicy.
var environmentPolicies = map[string]EnvironmentPolicy{
	"production": {
		RemovalPolicy:         RemovalRetain,
		LogRetentionDays:      90,
		IATransitionDays:      30,
		ArchiveTransitionDays: 90,
	},
}

// defaultPolicy treats data as disposable: short retention, no tiering,
// delete on stack teardown.
var defaultPolicy = EnvironmentPolicy{
	RemovalPolicy:    RemovalDelete,
	LogRetentionDays: 30,
}

// PolicyFor maps an environment to its retention policy. The mapping is
// total: unknown environments get the non-production default.
func PolicyFor(environment string) EnvironmentPolicy {
	if p, ok := environmentPolicies[environment]; ok {
		return p
	}
	return defaultPolicy
}
