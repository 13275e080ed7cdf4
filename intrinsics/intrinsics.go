// Package intrinsics provides CloudFormation intrinsic function values.
//
// Each type serializes to its canonical Fn:: form, so plan code can place
// an intrinsic anywhere a resource property or output value accepts `any`:
//
//	ec2.Subnet{
//	    VpcId:            Ref{LogicalName: "VPC"},
//	    AvailabilityZone: Select{Index: 0, List: GetAZs{Region: ""}},
//	}
//
// The package also carries the IAM policy document vocabulary (policy.go)
// and pseudo-parameter references (pseudo.go).
package intrinsics

import "encoding/json"

// Ref references a resource or parameter by logical name.
// Serializes to {"Ref": "LogicalName"}.
type Ref struct {
	LogicalName string
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Ref": r.LogicalName})
}

// Sub substitutes pseudo-parameter variables in a string.
// Serializes to {"Fn::Sub": "string"}.
type Sub struct {
	String string
}

func (s Sub) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Fn::Sub": s.String})
}

// Join concatenates values with a delimiter. Values may be a []any of
// literals and intrinsics, or a single list-returning intrinsic such as
// a GetAtt on a list attribute.
// Serializes to {"Fn::Join": [delimiter, values]}.
type Join struct {
	Delimiter string
	Values    any
}

func (j Join) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"Fn::Join": []any{j.Delimiter, j.Values},
	})
}

// Select picks one element from a list. List may be a []any or a
// list-returning intrinsic such as GetAZs or Cidr.
// Serializes to {"Fn::Select": [index, list]}.
type Select struct {
	Index int
	List  any
}

func (s Select) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"Fn::Select": []any{s.Index, s.List},
	})
}

// GetAZs returns the availability zones of a region. An empty Region
// means the stack's own region.
// Serializes to {"Fn::GetAZs": region}.
type GetAZs struct {
	Region any
}

func (g GetAZs) MarshalJSON() ([]byte, error) {
	region := g.Region
	if region == nil {
		region = ""
	}
	return json.Marshal(map[string]any{"Fn::GetAZs": region})
}

// Cidr carves Count blocks of host-bit size CidrBits out of IPBlock.
// IPBlock may be a literal CIDR string or an intrinsic resolving to one,
// such as a Select over a VPC's Ipv6CidrBlocks attribute.
// Serializes to {"Fn::Cidr": [ipBlock, count, cidrBits]}.
type Cidr struct {
	IPBlock  any
	Count    int
	CidrBits int
}

func (c Cidr) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"Fn::Cidr": []any{c.IPBlock, c.Count, c.CidrBits},
	})
}

// Tag is a resource tag. Value accepts literals and intrinsics.
type Tag struct {
	Key   string `json:"Key"`
	Value any    `json:"Value"`
}
