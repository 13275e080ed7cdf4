package template

import (
	"fmt"
	"testing"

	"github.com/eliodevbr/vpcforge/intrinsics"
	"github.com/eliodevbr/vpcforge/resources/ec2"
)

// BenchmarkBuild benchmarks building templates with varying subnet counts.
func BenchmarkBuild(b *testing.B) {
	sizes := []int{10, 50, 100, 200}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("resources_%d", size), func(b *testing.B) {
			builder := subnetBuilder(size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := builder.Build()
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkToJSON benchmarks JSON serialization with varying resource counts.
func BenchmarkToJSON(b *testing.B) {
	sizes := []int{10, 50, 100}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("resources_%d", size), func(b *testing.B) {
			tmpl, err := subnetBuilder(size).Build()
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := ToJSON(tmpl)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkToYAML benchmarks YAML serialization with varying resource counts.
func BenchmarkToYAML(b *testing.B) {
	sizes := []int{10, 50, 100}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("resources_%d", size), func(b *testing.B) {
			tmpl, err := subnetBuilder(size).Build()
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := ToYAML(tmpl)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkOrder benchmarks dependency ordering over a chain of resources.
func BenchmarkOrder(b *testing.B) {
	sizes := []int{20, 50, 100}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("resources_%d", size), func(b *testing.B) {
			builder := NewBuilder()
			for i := 0; i < size; i++ {
				name := fmt.Sprintf("RouteTable%d", i)
				var deps []string
				if i > 0 {
					deps = []string{fmt.Sprintf("RouteTable%d", i-1)}
				}
				builder.Add(name, ec2.RouteTable{
					VpcId: intrinsics.Ref{LogicalName: "VPC"},
				}, deps...)
			}
			builder.Add("VPC", ec2.VPC{CidrBlock: "10.0.0.0/16"})

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := builder.Order()
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// subnetBuilder assembles a builder holding count subnets in one VPC.
func subnetBuilder(count int) *Builder {
	builder := NewBuilder()
	builder.Add("VPC", ec2.VPC{CidrBlock: "10.0.0.0/16"})

	for i := 0; i < count; i++ {
		builder.Add(fmt.Sprintf("Subnet%d", i), ec2.Subnet{
			VpcId:            intrinsics.Ref{LogicalName: "VPC"},
			CidrBlock:        fmt.Sprintf("10.0.%d.0/24", i%256),
			AvailabilityZone: intrinsics.Select{Index: i % 3, List: intrinsics.GetAZs{}},
			Tags: []any{
				intrinsics.Tag{Key: "Environment", Value: "bench"},
			},
		})
	}

	return builder
}
