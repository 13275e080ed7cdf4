package lint

import (
	"fmt"
	"net"
	"sort"
	"strings"

	vpcforge "github.com/eliodevbr/vpcforge"
)

// Rule is a single template policy check.
type Rule struct {
	ID          string
	Description string
	Check       func(tmpl *vpcforge.Template) []vpcforge.LintIssue
}

// allRules lists every rule in ID order.
var allRules = []Rule{
	{
		ID:          "VF001",
		Description: "Application-tier security groups must not accept traffic from open CIDR ranges",
		Check:       checkApplicationTierIngress,
	},
	{
		ID:          "VF002",
		Description: "Buckets must carry server-side encryption",
		Check:       checkBucketEncryption,
	},
	{
		ID:          "VF003",
		Description: "Buckets must block all public access",
		Check:       checkBucketPublicAccess,
	},
	{
		ID:          "VF004",
		Description: "IPv6 security rules require an IPv6 CIDR block association",
		Check:       checkIPv6Leakage,
	},
	{
		ID:          "VF005",
		Description: "Subnet CIDR blocks must sit inside their VPC's range",
		Check:       checkSubnetRanges,
	},
}

// sortedResources returns logical names in a stable order so rule
// output is deterministic.
func sortedResources(tmpl *vpcforge.Template) []string {
	names := make([]string, 0, len(tmpl.Resources))
	for name := range tmpl.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ingressRules extracts a security group's ingress entries as maps.
func ingressRules(def vpcforge.ResourceDef) []map[string]any {
	raw, _ := def.Properties["SecurityGroupIngress"].([]any)
	var rules []map[string]any
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			rules = append(rules, m)
		}
	}
	return rules
}

// tagValue finds a tag by key in a resource's Tags property.
func tagValue(def vpcforge.ResourceDef, key string) string {
	tags, _ := def.Properties["Tags"].([]any)
	for _, entry := range tags {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if m["Key"] == key {
			if v, ok := m["Value"].(string); ok {
				return v
			}
		}
	}
	return ""
}

func isOpenCidr(v any) bool {
	s, ok := v.(string)
	return ok && (s == "0.0.0.0/0" || s == "::/0")
}

// checkApplicationTierIngress flags open ingress sources on security
// groups tagged as application tier. The application tier only ever
// accepts traffic by reference to the load-balancer group.
func checkApplicationTierIngress(tmpl *vpcforge.Template) []vpcforge.LintIssue {
	var issues []vpcforge.LintIssue
	for _, name := range sortedResources(tmpl) {
		def := tmpl.Resources[name]
		if def.Type != "AWS::EC2::SecurityGroup" {
			continue
		}
		if tagValue(def, "Component") != "Application" && !strings.HasPrefix(name, "Application") {
			continue
		}
		for _, rule := range ingressRules(def) {
			if isOpenCidr(rule["CidrIp"]) || isOpenCidr(rule["CidrIpv6"]) {
				issues = append(issues, vpcforge.LintIssue{
					Rule:     "VF001",
					Severity: "error",
					Resource: name,
					Message:  "application-tier ingress from an open CIDR range; source traffic by security group reference instead",
				})
			}
		}
	}
	return issues
}

// checkBucketEncryption flags buckets without a server-side encryption
// configuration.
func checkBucketEncryption(tmpl *vpcforge.Template) []vpcforge.LintIssue {
	var issues []vpcforge.LintIssue
	for _, name := range sortedResources(tmpl) {
		def := tmpl.Resources[name]
		if def.Type != "AWS::S3::Bucket" {
			continue
		}
		if _, ok := def.Properties["BucketEncryption"]; !ok {
			issues = append(issues, vpcforge.LintIssue{
				Rule:     "VF002",
				Severity: "error",
				Resource: name,
				Message:  "bucket has no BucketEncryption configuration",
			})
		}
	}
	return issues
}

// publicAccessFlags are the four settings that together block public
// bucket access.
var publicAccessFlags = []string{
	"BlockPublicAcls",
	"BlockPublicPolicy",
	"IgnorePublicAcls",
	"RestrictPublicBuckets",
}

// checkBucketPublicAccess flags buckets whose public-access block is
// missing or incomplete.
func checkBucketPublicAccess(tmpl *vpcforge.Template) []vpcforge.LintIssue {
	var issues []vpcforge.LintIssue
	for _, name := range sortedResources(tmpl) {
		def := tmpl.Resources[name]
		if def.Type != "AWS::S3::Bucket" {
			continue
		}
		block, ok := def.Properties["PublicAccessBlockConfiguration"].(map[string]any)
		if !ok {
			issues = append(issues, vpcforge.LintIssue{
				Rule:     "VF003",
				Severity: "error",
				Resource: name,
				Message:  "bucket has no PublicAccessBlockConfiguration",
			})
			continue
		}
		for _, flag := range publicAccessFlags {
			if v, _ := block[flag].(bool); !v {
				issues = append(issues, vpcforge.LintIssue{
					Rule:     "VF003",
					Severity: "error",
					Resource: name,
					Message:  fmt.Sprintf("public access block leaves %s unset", flag),
				})
			}
		}
	}
	return issues
}

// checkIPv6Leakage flags ::/0 security rules or IPv6 routes in a
// template without an IPv6 CIDR block association. Those rules belong
// to dual-stack mode only.
func checkIPv6Leakage(tmpl *vpcforge.Template) []vpcforge.LintIssue {
	for _, def := range tmpl.Resources {
		if def.Type == "AWS::EC2::VPCCidrBlock" {
			return nil
		}
	}

	var issues []vpcforge.LintIssue
	for _, name := range sortedResources(tmpl) {
		def := tmpl.Resources[name]
		switch def.Type {
		case "AWS::EC2::SecurityGroup":
			for _, rule := range ingressRules(def) {
				if _, ok := rule["CidrIpv6"]; ok {
					issues = append(issues, vpcforge.LintIssue{
						Rule:     "VF004",
						Severity: "error",
						Resource: name,
						Message:  "IPv6 ingress rule without an IPv6 CIDR block association",
					})
				}
			}
		case "AWS::EC2::Route":
			if _, ok := def.Properties["DestinationIpv6CidrBlock"]; ok {
				issues = append(issues, vpcforge.LintIssue{
					Rule:     "VF004",
					Severity: "error",
					Resource: name,
					Message:  "IPv6 route without an IPv6 CIDR block association",
				})
			}
		}
	}
	return issues
}

// checkSubnetRanges flags subnets whose CIDR block falls outside the
// VPC's range. Only literal CIDR strings are checkable; intrinsic
// values resolve at deploy time and are skipped.
func checkSubnetRanges(tmpl *vpcforge.Template) []vpcforge.LintIssue {
	var vpcNet *net.IPNet
	for _, def := range tmpl.Resources {
		if def.Type != "AWS::EC2::VPC" {
			continue
		}
		if s, ok := def.Properties["CidrBlock"].(string); ok {
			if _, parsed, err := net.ParseCIDR(s); err == nil {
				vpcNet = parsed
			}
		}
	}
	if vpcNet == nil {
		return nil
	}

	var issues []vpcforge.LintIssue
	for _, name := range sortedResources(tmpl) {
		def := tmpl.Resources[name]
		if def.Type != "AWS::EC2::Subnet" {
			continue
		}
		s, ok := def.Properties["CidrBlock"].(string)
		if !ok {
			continue
		}
		ip, subnetNet, err := net.ParseCIDR(s)
		if err != nil {
			issues = append(issues, vpcforge.LintIssue{
				Rule:     "VF005",
				Severity: "error",
				Resource: name,
				Message:  fmt.Sprintf("subnet CIDR %q is not a valid CIDR", s),
			})
			continue
		}
		subnetPrefix, _ := subnetNet.Mask.Size()
		vpcPrefix, _ := vpcNet.Mask.Size()
		if !vpcNet.Contains(ip) || subnetPrefix < vpcPrefix {
			issues = append(issues, vpcforge.LintIssue{
				Rule:     "VF005",
				Severity: "error",
				Resource: name,
				Message:  fmt.Sprintf("subnet CIDR %s is outside the VPC range %s", s, vpcNet),
			})
		}
	}
	return issues
}
