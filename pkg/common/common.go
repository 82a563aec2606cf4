package common

import "time"

var (
	// Use it whenever possible (e.g. in --help output) to refer to the product name.
	Brand   = "ClusterTime"
	Version = "0.0.0"
)

const (
	DefaultQPSLimit           = 30
	DefaultBurstLimit         = 100
	DefaultNetworkParallelism = 5
	DefaultFetchRetries       = 3
	DefaultFetchTimeout       = 30 * time.Second
	// Namespace where ZTP creates ClusterGroupUpgrades for new clusters.
	DefaultUpgradeNamespace = "ztp-install"
)

type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

var OutputFormats = []OutputFormat{OutputFormatTable, OutputFormatJSON, OutputFormatYAML}
