package nvram

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
	"howett.net/plist"

	"github.com/sjzar/sipconfig/internal/errors"
)

const (
	DefaultToolPath    = "/usr/sbin/nvram"
	DefaultToolTimeout = 5 * time.Second
)

// Source produces a plist document whose top level dict holds the NVRAM
// variables, in the shape printed by `nvram -x -p`.
type Source func() ([]byte, error)

// FileSource reads an exported plist from disk.
func FileSource(path string) Source {
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}

// ToolSource runs `nvram -x -p`.
func ToolSource(toolPath string, timeout time.Duration) Source {
	if toolPath == "" {
		toolPath = DefaultToolPath
	}
	if timeout <= 0 {
		timeout = DefaultToolTimeout
	}
	return func() ([]byte, error) {
		if _, err := exec.LookPath(toolPath); err != nil {
			return nil, errors.CapabilityUnavailable(toolPath, err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cmd := exec.CommandContext(ctx, toolPath, "-x", "-p")
		out, err := cmd.Output()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%s timed out after %s", toolPath, timeout)
			}
			return nil, fmt.Errorf("%s -x -p: %w", toolPath, err)
		}
		log.Debug().Str("tool", toolPath).Int("bytes", len(out)).Msg("nvram dump loaded")
		return out, nil
	}
}

// PlistStore serves a single registry entry from a plist Source. The source is
// read once per Properties call.
type PlistStore struct {
	source Source
	node   string
}

func NewPlistStore(src Source) *PlistStore {
	return &PlistStore{source: src, node: OptionsPath}
}

func (s *PlistStore) Open(path string) (Entry, error) {
	if path != s.node {
		return nil, fmt.Errorf("plist source only provides %s, not %s", s.node, path)
	}
	return &plistEntry{source: s.source}, nil
}

type plistEntry struct {
	source Source
}

func (e *plistEntry) Properties() (Properties, error) {
	data, err := e.source()
	if err != nil {
		return nil, err
	}
	vars := map[string]any{}
	if _, err := plist.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("decode nvram plist: %w", err)
	}
	return plistProperties(vars), nil
}

func (e *plistEntry) Release() {}

type plistProperties map[string]any

func (p plistProperties) Lookup(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

func (p plistProperties) Release() {}
