package cmd

import (
	"fmt"

	"github.com/renato0307/pomar/version"
)

// VersionCmd prints build information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run() error {
	fmt.Fprintln(stdout, version.Info())
	return nil
}
