package sip

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/errors"
)

// LiveReader reports the configuration enforced by the running kernel.
// ActiveConfig and Bypassable must only be called when Available is true.
type LiveReader interface {
	Available() bool
	ActiveConfig() (ConfigWord, error)
	// Bypassable reports whether the restriction guarded by mask is currently
	// not enforced.
	Bypassable(mask ConfigWord) bool
}

// PersistedReader reads the configuration word stored in NVRAM.
type PersistedReader interface {
	ReadPersisted() ReadOutcome
}

// Reconciler merges live and persisted state into sip_config rows.
type Reconciler struct {
	Version    VersionProvider
	Live       LiveReader
	NVRAM      PersistedReader
	MinVersion OSVersion
}

// Report is the outcome of one evaluation. Rows is empty when Reason is set.
type Report struct {
	OSVersion   *OSVersion  `json:"os_version,omitempty" yaml:"os_version,omitempty"`
	LiveConfig  *ConfigWord `json:"live_config,omitempty" yaml:"live_config,omitempty"`
	NVRAMStatus OutcomeKind `json:"nvram_status" yaml:"nvram_status"`
	NVRAMConfig *ConfigWord `json:"nvram_config,omitempty" yaml:"nvram_config,omitempty"`
	NVRAMError  string      `json:"nvram_error,omitempty" yaml:"nvram_error,omitempty"`
	Reason      string      `json:"reason,omitempty" yaml:"reason,omitempty"`
	Rows        []Row       `json:"rows" yaml:"rows"`
}

// Generate returns the sip_config rows: the aggregate row first, then one row
// per registered flag. Unsupported hosts yield an empty slice.
func (r *Reconciler) Generate(ctx context.Context) []Row {
	return r.Evaluate(ctx).Rows
}

// Evaluate is Generate plus the raw inputs the rows were derived from.
func (r *Reconciler) Evaluate(ctx context.Context) *Report {
	rep := &Report{Rows: []Row{}, NVRAMStatus: OutcomeUnavailable}

	if err := r.checkPlatform(ctx, rep); err != nil {
		log.Debug().Err(err).Msg("sip config not applicable on this platform")
		rep.Reason = err.Error()
		return rep
	}

	if r.Live == nil || !r.Live.Available() {
		err := errors.CapabilityUnavailable("csr_get_active_config/csr_check", nil)
		log.Debug().Err(err).Msg("live csr interface missing")
		rep.Reason = err.Error()
		return rep
	}

	live, err := r.Live.ActiveConfig()
	if err != nil {
		err = errors.CapabilityUnavailable("csr_get_active_config", err)
		log.Debug().Err(err).Msg("live csr config unreadable")
		rep.Reason = err.Error()
		return rep
	}
	rep.LiveConfig = &live

	aggregate := classify(live)

	nv := r.readPersisted()
	rep.NVRAMStatus = nv.Kind
	switch nv.Kind {
	case OutcomeSuccess:
		w := nv.Word
		rep.NVRAMConfig = &w
	case OutcomeError:
		log.Warn().Err(nv.Err).Msg("read csr-active-config from nvram failed")
		rep.NVRAMError = nv.Err.Error()
	default:
		switch {
		case nv.Err == nil:
		case errors.Benign(nv.Err):
			log.Debug().Err(nv.Err).Msg("csr-active-config not available")
		default:
			log.Warn().Err(nv.Err).Msg("csr-active-config not available")
		}
	}

	agg := Row{ConfigFlag: AggregateFlag}
	if aggregate != nil {
		agg.Enabled = Int(*aggregate)
		if nv.OK() {
			agg.EnabledNVRAM = Int(*aggregate)
		}
	}

	rows := make([]Row, 0, len(flags)+1)
	rows = append(rows, agg)
	for _, f := range flags {
		row := Row{
			ConfigFlag: f.Name,
			Enabled:    Int(!r.Live.Bypassable(f.Bit)),
		}
		if nv.OK() {
			row.EnabledNVRAM = Int(nv.Word.Has(f.Bit))
		}
		rows = append(rows, row)
	}
	rep.Rows = rows

	return rep
}

func (r *Reconciler) checkPlatform(ctx context.Context, rep *Report) error {
	if r.Version == nil {
		return errors.PlatformUnsupported("unknown", nil)
	}
	v, err := r.Version.OSVersion(ctx)
	if err != nil {
		return errors.PlatformUnsupported("unknown", err)
	}
	rep.OSVersion = &v

	floor := r.MinVersion
	if floor == (OSVersion{}) {
		floor = MinimumVersion
	}
	if v.Less(floor) {
		return errors.PlatformUnsupported(v.String(), nil)
	}
	return nil
}

func (r *Reconciler) readPersisted() ReadOutcome {
	if r.NVRAM == nil {
		return Unavailable(nil)
	}
	return r.NVRAM.ReadPersisted()
}

// classify returns the aggregate enforcement state of a live word, or nil
// when the word carries bits outside ValidMask.
func classify(live ConfigWord) *bool {
	var enabled bool
	switch {
	case live == 0:
		enabled = true
	case live|ValidMask == ValidMask:
		enabled = false
	default:
		return nil
	}
	return &enabled
}
