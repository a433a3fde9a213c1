// Package output provides console and log-file output for the CLI.
package output
