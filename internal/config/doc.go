// Package config provides configuration loading, merging, and validation
// facilities for the go-onboard server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Defaults are applied to whatever is still empty after the merge, and the
// result is validated once. The entry point is [GetStructuredConfig].
package config
