package config

import "slices"

// knownRegions are the regions offered by --list-regions and the init wizard.
// Other region identifiers are still accepted and passed through to AWS.
var knownRegions = []string{
	"us-east-1", "us-east-2", "us-west-1", "us-west-2",
	"eu-west-1", "eu-west-2", "eu-west-3", "eu-central-1",
	"ap-south-1", "ap-northeast-1", "ap-northeast-2", "ap-southeast-1", "ap-southeast-2",
	"sa-east-1", "ca-central-1",
}

// KnownRegions returns a copy of the known region identifiers.
func KnownRegions() []string {
	return slices.Clone(knownRegions)
}

// IsKnownRegion reports whether region is in the known list.
func IsKnownRegion(region string) bool {
	return slices.Contains(knownRegions, region)
}
