package sipconfig

import (
	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
	"github.com/sjzar/sipconfig/internal/sip/live"
	"github.com/sjzar/sipconfig/internal/sip/nvram"
	"github.com/sjzar/sipconfig/internal/sip/osver"
	"github.com/sjzar/sipconfig/internal/sipconfig/conf"
)

// NewReconciler wires the readers selected by c.
func NewReconciler(c *conf.Config) (*sip.Reconciler, error) {
	floor, err := c.GetMinOSVersion()
	if err != nil {
		return nil, errors.Config("invalid min_os_version", err)
	}

	version, err := osver.New(c.OSVersion.Source, c.OSVersion.Value, c.OSVersion.PlistPath)
	if err != nil {
		return nil, err
	}

	lr, err := newLiveReader(c.Live)
	if err != nil {
		return nil, err
	}

	store, err := newStore(c.NVRAM)
	if err != nil {
		return nil, err
	}

	return &sip.Reconciler{
		Version:    version,
		Live:       lr,
		NVRAM:      nvram.NewReader(store),
		MinVersion: floor,
	}, nil
}

func newLiveReader(c conf.LiveConfig) (sip.LiveReader, error) {
	switch c.Source {
	case "", conf.LiveKernel:
		caps := live.Probe()
		log.Debug().Interface("capabilities", caps).Msg("live csr probe")
		return live.Kernel(), nil
	case conf.LiveFixed:
		return live.Fixed(c.FixedConfig), nil
	case conf.LiveNone:
		return live.Unavailable(), nil
	}
	return nil, errors.Config("unknown live.source: "+c.Source, nil)
}

// newStore returns a nil Store for "none", which reads as unavailable.
func newStore(c conf.NVRAMConfig) (nvram.Store, error) {
	switch c.Source {
	case "", conf.NVRAMIOKit:
		return nvram.IOKit(), nil
	case conf.NVRAMTool:
		return nvram.NewPlistStore(nvram.ToolSource(c.ToolPath, c.Timeout)), nil
	case conf.NVRAMFile:
		if c.File == "" {
			return nil, errors.Config("nvram.file is required when nvram.source is file", nil)
		}
		return nvram.NewPlistStore(nvram.FileSource(c.File)), nil
	case conf.NVRAMNone:
		return nil, nil
	}
	return nil, errors.Config("unknown nvram.source: "+c.Source, nil)
}
