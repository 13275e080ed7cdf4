package planner

import (
	"net"
	"testing"

	"github.com/apparentlymart/go-cidr/cidr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarveSubnets_Defaults(t *testing.T) {
	public, private, err := carveSubnets("10.0.0.0/16", 3, 24, 24)
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/24", "10.0.1.0/24", "10.0.2.0/24"}, public)
	assert.Equal(t, []string{"10.0.3.0/24", "10.0.4.0/24", "10.0.5.0/24"}, private)
}

func TestCarveSubnets_SingleAZ(t *testing.T) {
	public, private, err := carveSubnets("10.0.0.0/16", 1, 24, 24)
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/24"}, public)
	assert.Equal(t, []string{"10.0.1.0/24"}, private)
}

func TestCarveSubnets_MixedMasks(t *testing.T) {
	// Wider private blocks jump to the next aligned boundary after the
	// public run.
	public, private, err := carveSubnets("10.0.0.0/16", 2, 24, 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/24", "10.0.1.0/24"}, public)
	assert.Equal(t, []string{"10.0.16.0/20", "10.0.32.0/20"}, private)
}

func TestCarveSubnets_NonDefaultBase(t *testing.T) {
	public, private, err := carveSubnets("172.16.0.0/18", 2, 24, 24)
	require.NoError(t, err)

	assert.Equal(t, []string{"172.16.0.0/24", "172.16.1.0/24"}, public)
	assert.Equal(t, []string{"172.16.2.0/24", "172.16.3.0/24"}, private)
}

func TestCarveSubnets_PublicBeforePrivate(t *testing.T) {
	public, private, err := carveSubnets("10.0.0.0/16", 3, 24, 24)
	require.NoError(t, err)

	_, lastPublic, err := net.ParseCIDR(public[len(public)-1])
	require.NoError(t, err)
	_, firstPrivate, err := net.ParseCIDR(private[0])
	require.NoError(t, err)

	_, publicEnd := cidr.AddressRange(lastPublic)
	privateStart, _ := cidr.AddressRange(firstPrivate)
	assert.True(t, privateStart.Equal(cidr.Inc(publicEnd)),
		"private range must start right after the public range")
}

func TestCarveSubnets_Contiguous(t *testing.T) {
	public, private, err := carveSubnets("10.0.0.0/16", 3, 24, 24)
	require.NoError(t, err)

	all := append(append([]string{}, public...), private...)
	for i := 1; i < len(all); i++ {
		_, prev, err := net.ParseCIDR(all[i-1])
		require.NoError(t, err)
		_, cur, err := net.ParseCIDR(all[i])
		require.NoError(t, err)

		_, prevLast := cidr.AddressRange(prev)
		curFirst, _ := cidr.AddressRange(cur)
		assert.True(t, curFirst.Equal(cidr.Inc(prevLast)),
			"%s does not follow %s", all[i], all[i-1])
	}
}

func TestCarveSubnets_TooSmall(t *testing.T) {
	_, _, err := carveSubnets("10.0.0.0/24", 3, 24, 24)
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "vpcCidr", verr.Field)
	assert.Contains(t, verr.Constraint, "cannot fit")
}

func TestCarveSubnets_ExactFit(t *testing.T) {
	// A /24 VPC holds exactly two /25 halves.
	public, private, err := carveSubnets("10.0.0.0/24", 1, 25, 25)
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/25"}, public)
	assert.Equal(t, []string{"10.0.0.128/25"}, private)
}

func TestCarveSubnets_MalformedCidr(t *testing.T) {
	_, _, err := carveSubnets("10.0.0.0", 3, 24, 24)
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "vpcCidr", verr.Field)
}
