// Package config manages git-dendrify configuration.
//
// It handles:
//   - The per-repository config file (.git/dendrify.yaml)
//   - Environment overrides for quiet mode and the log file
package config
