package osver

import (
	"context"
	"os"

	"howett.net/plist"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

const SystemVersionPath = "/System/Library/CoreServices/SystemVersion.plist"

type SystemVersion struct {
	ProductName    string `plist:"ProductName"`
	ProductVersion string `plist:"ProductVersion"`
	ProductBuild   string `plist:"ProductBuildVersion"`
}

// ReadSystemVersion decodes a SystemVersion.plist file.
func ReadSystemVersion(path string) (*SystemVersion, error) {
	if path == "" {
		path = SystemVersionPath
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sv := &SystemVersion{}
	if _, err := plist.Unmarshal(b, sv); err != nil {
		return nil, err
	}
	return sv, nil
}

// Plist reads ProductVersion from a SystemVersion.plist file. An empty path
// means SystemVersionPath.
func Plist(path string) sip.VersionProvider {
	return sip.VersionFunc(func(context.Context) (sip.OSVersion, error) {
		sv, err := ReadSystemVersion(path)
		if err != nil {
			return sip.OSVersion{}, errors.PlatformUnsupported("unknown", err)
		}
		v, err := sip.ParseOSVersion(sv.ProductVersion)
		if err != nil {
			return sip.OSVersion{}, errors.PlatformUnsupported(sv.ProductVersion, err)
		}
		return v, nil
	})
}
