// Package osver discovers the installed macOS product version.
package osver

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

// Provider names accepted by New.
const (
	SourceAuto     = "auto"
	SourceSysctl   = "sysctl"
	SourceGopsutil = "gopsutil"
	SourcePlist    = "plist"
	SourceFixed    = "fixed"
)

// Fixed always reports v.
func Fixed(v sip.OSVersion) sip.VersionProvider {
	return sip.VersionFunc(func(context.Context) (sip.OSVersion, error) {
		return v, nil
	})
}

// Chain asks each provider in turn and returns the first answer.
func Chain(providers ...sip.VersionProvider) sip.VersionProvider {
	return sip.VersionFunc(func(ctx context.Context) (sip.OSVersion, error) {
		var errs []error
		for _, p := range providers {
			v, err := p.OSVersion(ctx)
			if err == nil {
				return v, nil
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return sip.OSVersion{}, errors.PlatformUnsupported("unknown", nil)
		}
		return sip.OSVersion{}, errors.JoinErrors(errs...)
	})
}

// Cached remembers the first successful answer of p.
func Cached(p sip.VersionProvider) sip.VersionProvider {
	var (
		mu  sync.Mutex
		got *sip.OSVersion
	)
	return sip.VersionFunc(func(ctx context.Context) (sip.OSVersion, error) {
		mu.Lock()
		defer mu.Unlock()
		if got != nil {
			return *got, nil
		}
		v, err := p.OSVersion(ctx)
		if err != nil {
			return v, err
		}
		got = &v
		log.Debug().Str("os_version", v.String()).Msg("os version detected")
		return v, nil
	})
}

// Auto tries sysctl, then gopsutil, then SystemVersion.plist.
func Auto() sip.VersionProvider {
	return Chain(Sysctl(), Gopsutil(), Plist(""))
}

// New builds the provider named by source. value is only used by
// SourceFixed and plistPath only by SourcePlist.
func New(source, value, plistPath string) (sip.VersionProvider, error) {
	switch source {
	case "", SourceAuto:
		return Cached(Auto()), nil
	case SourceSysctl:
		return Cached(Sysctl()), nil
	case SourceGopsutil:
		return Cached(Gopsutil()), nil
	case SourcePlist:
		return Cached(Plist(plistPath)), nil
	case SourceFixed:
		v, err := sip.ParseOSVersion(value)
		if err != nil {
			return nil, errors.Config("invalid os_version.value", err)
		}
		return Fixed(v), nil
	}
	return nil, errors.Config("unknown os_version.source: "+source, nil)
}
