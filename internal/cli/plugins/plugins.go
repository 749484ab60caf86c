// Package plugins runs external pdbdiff-<command> binaries for commands
// pdbdiff does not implement itself, in the style of git and kubectl.
package plugins

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ccollicutt/pdbdiff/pkg/printer"
)

// Prefix is prepended to a command name to form the plugin binary name.
const Prefix = "pdbdiff-"

// ErrPluginNotFound is returned when no plugin binary can be located.
var ErrPluginNotFound = errors.New("plugin not found")

// SearchDirs returns the directories checked before PATH, in order:
// the directory holding the running binary, then ~/.pdbdiff/plugins.
func SearchDirs() []string {
	var dirs []string
	if execPath, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(execPath))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(homeDir, ".pdbdiff", "plugins"))
	}
	return dirs
}

// FindPlugin returns the path of the pdbdiff-<command> binary, looking in
// SearchDirs first and then PATH.
func FindPlugin(command string) (string, error) {
	if command == "" || strings.ContainsAny(command, `/\`) {
		return "", ErrPluginNotFound
	}
	name := Prefix + command

	for _, dir := range SearchDirs() {
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	return "", ErrPluginNotFound
}

// Execute runs the plugin with stdio attached and returns its exit code.
func Execute(pluginPath string, args []string) int {
	cmd := exec.Command(pluginPath, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		printer.Errorf("running plugin %s: %v\n", filepath.Base(pluginPath), err)
		return 2
	}
	return 0
}

// FormatNotFoundError describes an unknown command and where a plugin for it
// would be picked up from.
func FormatNotFoundError(command string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "unknown command %q for \"pdbdiff\"\n", command)
	sb.WriteString("\nArguments that are not commands must be AS numbers (13335 or AS13335).\n")
	sb.WriteString("If this is a plugin, install the binary as one of:\n")
	fmt.Fprintf(&sb, "  - %s%s in the same directory as pdbdiff\n", Prefix, command)
	fmt.Fprintf(&sb, "  - ~/.pdbdiff/plugins/%s%s\n", Prefix, command)
	fmt.Fprintf(&sb, "  - %s%s anywhere in your PATH\n", Prefix, command)
	sb.WriteString("\nRun 'pdbdiff --help' for usage.")

	return sb.String()
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}
