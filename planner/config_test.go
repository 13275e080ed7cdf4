package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("environment: dev\n"))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, DefaultApp, cfg.App)
	assert.Equal(t, DefaultVPCCidr, cfg.VPCCidr)
	assert.Equal(t, DefaultMaxAZs, cfg.MaxAZs)
	require.NotNil(t, cfg.NATGateways)
	assert.Equal(t, DefaultNATGateways, *cfg.NATGateways)
	assert.Equal(t, DefaultPublicSubnetCidrMask, cfg.PublicSubnetCidrMask)
	assert.Equal(t, DefaultPrivateSubnetCidrMask, cfg.PrivateSubnetCidrMask)
	assert.False(t, cfg.EnableIPv6)
	assert.False(t, cfg.EnableVPCFlowLogs)
	assert.False(t, cfg.EnableHANATGateways)
	assert.Empty(t, cfg.AccountID)
	assert.Empty(t, cfg.AvailabilityZones)
}

func TestParseConfig_ExplicitZeroNATGateways(t *testing.T) {
	cfg, err := ParseConfig([]byte("environment: dev\nnatGateways: 0\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.NATGateways)
	assert.Zero(t, *cfg.NATGateways, "explicit zero must survive default filling")
	assert.Zero(t, cfg.ResolvedNATGateways())
}

func TestParseConfig_FullSurface(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
environment: production
app: testapp
vpcCidr: 10.20.0.0/16
maxAzs: 2
natGateways: 2
enableHANatGateways: false
publicSubnetCidrMask: 26
privateSubnetCidrMask: 24
enableIPv6: true
ipv6CidrBlock: 2001:db8::/56
enableVPCFlowLogs: true
accountId: "123456789012"
availabilityZones: [us-west-2a, us-west-2b]
`))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "10.20.0.0/16", cfg.VPCCidr)
	assert.Equal(t, 2, cfg.MaxAZs)
	assert.Equal(t, 2, *cfg.NATGateways)
	assert.Equal(t, 26, cfg.PublicSubnetCidrMask)
	assert.Equal(t, 24, cfg.PrivateSubnetCidrMask)
	assert.True(t, cfg.EnableIPv6)
	assert.Equal(t, "2001:db8::/56", cfg.IPv6CidrBlock)
	assert.True(t, cfg.EnableVPCFlowLogs)
	assert.Equal(t, "123456789012", cfg.AccountID)
	assert.Equal(t, []string{"us-west-2a", "us-west-2b"}, cfg.AvailabilityZones)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig_UnknownFieldRejected(t *testing.T) {
	_, err := ParseConfig([]byte("environment: dev\nnatGatways: 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseConfig_EmptyDocument(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Environment)
	assert.Error(t, cfg.Validate(), "an empty config is missing its environment")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: production\nmaxAzs: 2\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 2, cfg.MaxAZs)
	assert.Equal(t, DefaultVPCCidr, cfg.VPCCidr)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestResolvedNATGateways(t *testing.T) {
	tests := []struct {
		name string
		cfg  NetworkConfig
		want int
	}{
		{"default", NetworkConfig{MaxAZs: 3}, 1},
		{"explicit zero", NetworkConfig{MaxAZs: 3, NATGateways: intPtr(0)}, 0},
		{"explicit one", NetworkConfig{MaxAZs: 3, NATGateways: intPtr(1)}, 1},
		{"ha overrides explicit", NetworkConfig{MaxAZs: 3, NATGateways: intPtr(1), EnableHANATGateways: true}, 3},
		{"ha with single az", NetworkConfig{MaxAZs: 1, EnableHANATGateways: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolvedNATGateways())
		})
	}
}

func TestValidate_FieldConstraints(t *testing.T) {
	base := func() NetworkConfig {
		cfg := NetworkConfig{Environment: "dev"}
		cfg.Normalize()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*NetworkConfig)
		field  string
	}{
		{"missing environment", func(c *NetworkConfig) { c.Environment = "" }, "environment"},
		{"zero maxAzs", func(c *NetworkConfig) { c.MaxAZs = 0 }, "maxAzs"},
		{"negative maxAzs", func(c *NetworkConfig) { c.MaxAZs = -1 }, "maxAzs"},
		{"negative natGateways", func(c *NetworkConfig) { c.NATGateways = intPtr(-1) }, "natGateways"},
		{"natGateways between one and maxAzs", func(c *NetworkConfig) { c.NATGateways = intPtr(2) }, "natGateways"},
		{"malformed vpcCidr", func(c *NetworkConfig) { c.VPCCidr = "10.0.0.0" }, "vpcCidr"},
		{"ipv6 vpcCidr", func(c *NetworkConfig) { c.VPCCidr = "2001:db8::/32" }, "vpcCidr"},
		{"public mask below range", func(c *NetworkConfig) { c.PublicSubnetCidrMask = 8 }, "publicSubnetCidrMask"},
		{"public mask above range", func(c *NetworkConfig) { c.PublicSubnetCidrMask = 30 }, "publicSubnetCidrMask"},
		{"private mask wider than vpc", func(c *NetworkConfig) {
			c.VPCCidr = "10.0.0.0/24"
			c.PrivateSubnetCidrMask = 20
		}, "privateSubnetCidrMask"},
		{"ipv4 literal in ipv6CidrBlock", func(c *NetworkConfig) { c.IPv6CidrBlock = "10.0.0.0/8" }, "ipv6CidrBlock"},
		{"malformed ipv6CidrBlock", func(c *NetworkConfig) { c.IPv6CidrBlock = "2001:db8" }, "ipv6CidrBlock"},
		{"short accountId", func(c *NetworkConfig) { c.AccountID = "12345" }, "accountId"},
		{"non-numeric accountId", func(c *NetworkConfig) { c.AccountID = "12345678901a" }, "accountId"},
		{"availabilityZones length mismatch", func(c *NetworkConfig) {
			c.AvailabilityZones = []string{"us-east-1a"}
		}, "availabilityZones"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidate_AcceptsNATEqualToMaxAZs(t *testing.T) {
	cfg := NetworkConfig{Environment: "dev", MaxAZs: 3, NATGateways: intPtr(3)}
	cfg.Normalize()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_HANATIgnoresExplicitCount(t *testing.T) {
	cfg := NetworkConfig{Environment: "dev", NATGateways: intPtr(5), EnableHANATGateways: true}
	cfg.Normalize()
	assert.NoError(t, cfg.Validate(), "HA mode discards the explicit count entirely")
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := NetworkConfig{MaxAZs: -1, VPCCidr: "not-a-cidr"}
	cfg.Normalize()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment")
	assert.Contains(t, err.Error(), "maxAzs")
	assert.Contains(t, err.Error(), "vpcCidr")
}

func TestValidationError_Message(t *testing.T) {
	err := ValidationError{Field: "maxAzs", Constraint: "must be at least 1"}
	assert.EqualError(t, err, "invalid maxAzs: must be at least 1")
}
