// Package connectors provides the sources documents arrive from outside
// the CLI and HTTP API. The filesystem connector watches an inbox folder
// and streams dropped files to the intake service.
package connectors
