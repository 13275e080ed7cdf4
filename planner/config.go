// Package planner derives a deterministic network topology plan from a
// declarative configuration.
//
// The planner is a pure transformation: NetworkConfig in, TopologyPlan
// out. It performs no I/O and holds no state between invocations, so
// plans for different configurations may be computed concurrently.
// Provisioning the planned resources (ordering, rollback, drift) is
// CloudFormation's job; the planner's deliverable is the template.
//
//	cfg, err := planner.LoadConfig("network.yaml")
//	plan, err := planner.Plan(*cfg)
//	tmpl, err := plan.Template()
package planner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Normalize when a field is unset.
const (
	DefaultApp                   = "testapp"
	DefaultVPCCidr               = "10.0.0.0/16"
	DefaultMaxAZs                = 3
	DefaultNATGateways           = 1
	DefaultPublicSubnetCidrMask  = 24
	DefaultPrivateSubnetCidrMask = 24
)

// Subnet masks must stay within the range the VPC service accepts.
const (
	minSubnetCidrMask = 16
	maxSubnetCidrMask = 28
)

// NetworkConfig is the input to a planning run. A config is immutable
// once planning starts: any change produces a new plan from scratch.
//
// Environment is the only required field. It drives the retention
// policy, tag values, and flow-log bucket naming.
type NetworkConfig struct {
	Environment string `yaml:"environment" json:"environment"`

	// App identifies the application the network hosts. It prefixes
	// resource Name tags and the flow-log bucket name.
	App string `yaml:"app,omitempty" json:"app,omitempty"`

	VPCCidr string `yaml:"vpcCidr,omitempty" json:"vpcCidr,omitempty"`
	MaxAZs  int    `yaml:"maxAzs,omitempty" json:"maxAzs,omitempty"`

	// NATGateways is a pointer so an explicit 0 ("no NAT" mode) is
	// distinguishable from an absent value, which defaults to 1.
	NATGateways         *int `yaml:"natGateways,omitempty" json:"natGateways,omitempty"`
	EnableHANATGateways bool `yaml:"enableHANatGateways,omitempty" json:"enableHANatGateways,omitempty"`

	PublicSubnetCidrMask  int `yaml:"publicSubnetCidrMask,omitempty" json:"publicSubnetCidrMask,omitempty"`
	PrivateSubnetCidrMask int `yaml:"privateSubnetCidrMask,omitempty" json:"privateSubnetCidrMask,omitempty"`

	EnableIPv6    bool   `yaml:"enableIPv6,omitempty" json:"enableIPv6,omitempty"`
	IPv6CidrBlock string `yaml:"ipv6CidrBlock,omitempty" json:"ipv6CidrBlock,omitempty"`

	EnableVPCFlowLogs bool `yaml:"enableVPCFlowLogs,omitempty" json:"enableVPCFlowLogs,omitempty"`

	// AccountID, when set, is baked into the flow-log bucket name as a
	// literal. When empty the name uses an ${AWS::AccountId}
	// substitution resolved at deploy time.
	AccountID string `yaml:"accountId,omitempty" json:"accountId,omitempty"`

	// AvailabilityZones pins subnets to explicit zone names. When empty
	// the template selects zones with Fn::GetAZs at deploy time.
	AvailabilityZones []string `yaml:"availabilityZones,omitempty" json:"availabilityZones,omitempty"`
}

// ValidationError reports a configuration field that violates a
// constraint. Planning never starts while any remain.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

// LoadConfig reads and parses a YAML network configuration. Unknown
// fields are rejected. Defaults are applied; Validate is left to the
// caller (Plan validates anyway).
func LoadConfig(path string) (*NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses a YAML network configuration from memory. An empty
// document yields a default config that fails validation on the missing
// environment.
func ParseConfig(data []byte) (*NetworkConfig, error) {
	var cfg NetworkConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Normalize fills unset fields with their defaults. Idempotent.
func (c *NetworkConfig) Normalize() {
	if c.App == "" {
		c.App = DefaultApp
	}
	if c.VPCCidr == "" {
		c.VPCCidr = DefaultVPCCidr
	}
	if c.MaxAZs == 0 {
		c.MaxAZs = DefaultMaxAZs
	}
	if c.NATGateways == nil {
		n := DefaultNATGateways
		c.NATGateways = &n
	}
	if c.PublicSubnetCidrMask == 0 {
		c.PublicSubnetCidrMask = DefaultPublicSubnetCidrMask
	}
	if c.PrivateSubnetCidrMask == 0 {
		c.PrivateSubnetCidrMask = DefaultPrivateSubnetCidrMask
	}
}

// ResolvedNATGateways returns the NAT gateway count after the HA
// override: one per AZ when EnableHANATGateways is set, the explicit
// value otherwise. Zero is a legal "no NAT" mode.
func (c *NetworkConfig) ResolvedNATGateways() int {
	if c.EnableHANATGateways {
		return c.MaxAZs
	}
	if c.NATGateways == nil {
		return DefaultNATGateways
	}
	return *c.NATGateways
}

var accountIDPattern = regexp.MustCompile(`^\d{12}$`)

// Validate checks every constraint and returns all violations joined.
// A nil error means planning may proceed.
func (c *NetworkConfig) Validate() error {
	var errs []error

	if c.Environment == "" {
		errs = append(errs, ValidationError{Field: "environment", Constraint: "must not be empty"})
	}
	if c.MaxAZs < 1 {
		errs = append(errs, ValidationError{Field: "maxAzs", Constraint: "must be at least 1"})
	}

	if c.NATGateways != nil && !c.EnableHANATGateways {
		switch n := *c.NATGateways; {
		case n < 0:
			errs = append(errs, ValidationError{Field: "natGateways", Constraint: "must not be negative"})
		case n != 0 && n != 1 && n != c.MaxAZs:
			errs = append(errs, ValidationError{
				Field:      "natGateways",
				Constraint: fmt.Sprintf("must be 0, 1, or equal to maxAzs (%d)", c.MaxAZs),
			})
		}
	}

	vpcPrefix := -1
	ip, network, err := net.ParseCIDR(c.VPCCidr)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{Field: "vpcCidr", Constraint: fmt.Sprintf("%q is not a valid CIDR", c.VPCCidr)})
	case ip.To4() == nil:
		errs = append(errs, ValidationError{Field: "vpcCidr", Constraint: "must be an IPv4 CIDR"})
	default:
		vpcPrefix, _ = network.Mask.Size()
	}

	for _, mask := range []struct {
		field string
		value int
	}{
		{"publicSubnetCidrMask", c.PublicSubnetCidrMask},
		{"privateSubnetCidrMask", c.PrivateSubnetCidrMask},
	} {
		if mask.value < minSubnetCidrMask || mask.value > maxSubnetCidrMask {
			errs = append(errs, ValidationError{
				Field:      mask.field,
				Constraint: fmt.Sprintf("must be between /%d and /%d", minSubnetCidrMask, maxSubnetCidrMask),
			})
			continue
		}
		if vpcPrefix >= 0 && mask.value < vpcPrefix {
			errs = append(errs, ValidationError{
				Field:      mask.field,
				Constraint: fmt.Sprintf("must not be larger than the VPC CIDR (/%d)", vpcPrefix),
			})
		}
	}

	if c.IPv6CidrBlock != "" {
		ip6, _, err := net.ParseCIDR(c.IPv6CidrBlock)
		if err != nil || ip6.To4() != nil {
			errs = append(errs, ValidationError{
				Field:      "ipv6CidrBlock",
				Constraint: fmt.Sprintf("%q is not a valid IPv6 CIDR", c.IPv6CidrBlock),
			})
		}
	}

	if c.AccountID != "" && !accountIDPattern.MatchString(c.AccountID) {
		errs = append(errs, ValidationError{Field: "accountId", Constraint: "must be a 12-digit account id"})
	}

	if len(c.AvailabilityZones) > 0 && len(c.AvailabilityZones) != c.MaxAZs {
		errs = append(errs, ValidationError{
			Field:      "availabilityZones",
			Constraint: fmt.Sprintf("must list exactly maxAzs (%d) zones when set", c.MaxAZs),
		})
	}

	return errors.Join(errs...)
}
