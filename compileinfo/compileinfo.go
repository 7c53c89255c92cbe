// Package compileinfo reports the module, commit and toolchain a binary was
// built from, for the log and for the header of annotated VCFs.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
)

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s binary was built with %s at commit %v at time %v.%s", c.Package, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// HeaderLine renders the build as a VCF meta-information line, e.g.
// ##pedmodels_build=<Version=v1.2.0,Commit=abc123,Go=go1.18,Modified=false>
func (c CompileInfo) HeaderLine(program string) string {
	fields := []string{
		"Version=" + orUnknown(c.Version),
		"Commit=" + orUnknown(c.Commit),
		"Go=" + orUnknown(c.GoVersion),
		fmt.Sprintf("Modified=%t", c.Modified),
	}

	return fmt.Sprintf("##%s_build=<%s>", program, strings.Join(fields, ","))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}
