// Package file loads TOML playbooks: a [defaults] table and an ordered
// list of [[uci]] desired-state specs.
package file
