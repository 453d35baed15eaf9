// Package version provides the tool's version number.
package version

// Version contains the pve-attach version number.
var Version = "0.3.0"
