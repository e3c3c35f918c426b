// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package opener hands a file to the desktop's default application, the
// way a double click in the file manager would.
package opener

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// command is the launcher binary and the arguments placed before the path.
type command struct {
	bin  string
	args []string
}

// launchers maps GOOS to the platform launcher. Other Unix systems use
// xdg-open.
var launchers = map[string]command{
	"darwin":  {bin: "open"},
	"windows": {bin: "cmd", args: []string{"/c", "start", ""}},
}

var xdgOpen = command{bin: "xdg-open"}

// executor abstracts process launching for testing.
type executor interface {
	LookPath(file string) (string, error)
	Start(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Start launches the process without waiting; the viewer outlives us.
func (o *osExecutor) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Opener opens files with the platform launcher.
type Opener struct {
	goos string
	exec executor
}

// New returns an Opener for the running platform.
func New() *Opener {
	return &Opener{goos: runtime.GOOS, exec: &osExecutor{}}
}

// Launcher returns the launcher binary for the platform.
func (o *Opener) Launcher() string {
	return o.command().bin
}

// Open launches the default application for path. The file must exist.
func (o *Opener) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	c := o.command()
	if _, err := o.exec.LookPath(c.bin); err != nil {
		return fmt.Errorf("launcher %s not available: %w", c.bin, err)
	}
	args := append(append([]string(nil), c.args...), path)
	if err := o.exec.Start(c.bin, args...); err != nil {
		return fmt.Errorf("running %s %s: %w", c.bin, path, err)
	}
	return nil
}

func (o *Opener) command() command {
	if c, ok := launchers[o.goos]; ok {
		return c
	}
	return xdgOpen
}
