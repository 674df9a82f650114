package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Name = "sipconfig"

	// Version and Commit may be set with -ldflags "-X".
	Version   = "(dev)"
	Commit    = ""
	buildInfo = debug.BuildInfo{}
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	buildInfo = *bi
	if len(bi.Main.Version) > 0 && Version == "(dev)" {
		Version = bi.Main.Version
	}
	if Commit == "" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				Commit = s.Value[:7]
			}
		}
	}
}

// GetMore returns a one line version summary, or with mod the full module
// list of the binary.
func GetMore(mod bool) string {
	if mod {
		mod := buildInfo.String()
		if len(mod) > 0 {
			return fmt.Sprintf("\t%s\n", strings.ReplaceAll(mod[:len(mod)-1], "\n", "\n\t"))
		}
	}
	v := Version
	if Commit != "" {
		v += " (" + Commit + ")"
	}
	return fmt.Sprintf("version %s %s %s/%s\n", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
