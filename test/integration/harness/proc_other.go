//go:build !unix

package harness

import "os/exec"

// configureProcessGroup keeps the default behaviour of killing only the process
func configureProcessGroup(cmd *exec.Cmd) {}
