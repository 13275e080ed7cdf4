package planner

import (
	"fmt"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"
)

// carveSubnets splits the VPC address space into contiguous,
// non-overlapping blocks: maxAzs public subnets first, then maxAzs
// private subnets. Failures mean the configuration asks for more
// address space than the VPC CIDR holds and surface as validation
// errors before any resource is described.
func carveSubnets(vpcCidr string, maxAzs, publicMask, privateMask int) (public, private []string, err error) {
	_, vpcNet, err := net.ParseCIDR(vpcCidr)
	if err != nil {
		return nil, nil, ValidationError{Field: "vpcCidr", Constraint: fmt.Sprintf("%q is not a valid CIDR", vpcCidr)}
	}
	vpcPrefix, _ := vpcNet.Mask.Size()

	blocks := make([]*net.IPNet, 0, 2*maxAzs)
	var current *net.IPNet

	alloc := func(mask int) error {
		if current == nil {
			first, err := cidr.Subnet(vpcNet, mask-vpcPrefix, 0)
			if err != nil {
				return err
			}
			current = first
		} else {
			next, rollover := cidr.NextSubnet(current, mask)
			if rollover {
				return fmt.Errorf("address space exhausted after %s", current)
			}
			current = next
		}
		blocks = append(blocks, current)
		return nil
	}

	for i := 0; i < maxAzs; i++ {
		if err := alloc(publicMask); err != nil {
			return nil, nil, carveError(vpcCidr, maxAzs, publicMask, privateMask, err)
		}
	}
	for i := 0; i < maxAzs; i++ {
		if err := alloc(privateMask); err != nil {
			return nil, nil, carveError(vpcCidr, maxAzs, publicMask, privateMask, err)
		}
	}

	// An oversized carve shows up as blocks walking past the last VPC
	// address.
	for _, b := range blocks {
		first, last := cidr.AddressRange(b)
		if !vpcNet.Contains(first) || !vpcNet.Contains(last) {
			return nil, nil, carveError(vpcCidr, maxAzs, publicMask, privateMask,
				fmt.Errorf("%s extends past the VPC range", b))
		}
	}
	if err := cidr.VerifyNoOverlap(blocks, vpcNet); err != nil {
		return nil, nil, carveError(vpcCidr, maxAzs, publicMask, privateMask, err)
	}

	for i, b := range blocks {
		if i < maxAzs {
			public = append(public, b.String())
		} else {
			private = append(private, b.String())
		}
	}
	return public, private, nil
}

func carveError(vpcCidr string, maxAzs, publicMask, privateMask int, err error) error {
	return ValidationError{
		Field: "vpcCidr",
		Constraint: fmt.Sprintf("%s cannot fit %d /%d public and %d /%d private subnets: %v",
			vpcCidr, maxAzs, publicMask, maxAzs, privateMask, err),
	}
}
