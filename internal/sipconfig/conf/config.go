package conf

import (
	"time"

	"github.com/sjzar/sipconfig/internal/sip"
)

const (
	DefaultHTTPAddr       = "127.0.0.1:5031"
	DefaultWatchInterval  = 30 * time.Second
	DefaultNVRAMTimeout   = 5 * time.Second
	DefaultWebhookTimeout = 10 * time.Second
)

// Live reader sources.
const (
	LiveKernel = "kernel"
	LiveFixed  = "fixed"
	LiveNone   = "none"
)

// NVRAM store sources.
const (
	NVRAMIOKit = "iokit"
	NVRAMTool  = "nvram-tool"
	NVRAMFile  = "file"
	NVRAMNone  = "none"
)

type Config struct {
	ConfigDir    string `mapstructure:"-" json:"-"`
	LogLevel     string `mapstructure:"log_level" json:"log_level"`
	MinOSVersion string `mapstructure:"min_os_version" json:"min_os_version"`

	Live      LiveConfig      `mapstructure:"live" json:"live"`
	NVRAM     NVRAMConfig     `mapstructure:"nvram" json:"nvram"`
	OSVersion OSVersionConfig `mapstructure:"os_version" json:"os_version"`

	HTTPAddr  string          `mapstructure:"http_addr" json:"http_addr"`
	Watch     WatchConfig     `mapstructure:"watch" json:"watch"`
	Extension ExtensionConfig `mapstructure:"extension" json:"extension"`
	Webhook   *Webhook        `mapstructure:"webhook" json:"webhook,omitempty"`
}

type LiveConfig struct {
	Source      string         `mapstructure:"source" json:"source"`
	FixedConfig sip.ConfigWord `mapstructure:"fixed_config" json:"fixed_config"`
}

type NVRAMConfig struct {
	Source   string        `mapstructure:"source" json:"source"`
	File     string        `mapstructure:"file" json:"file,omitempty"`
	ToolPath string        `mapstructure:"tool_path" json:"tool_path"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
}

type OSVersionConfig struct {
	Source    string `mapstructure:"source" json:"source"`
	Value     string `mapstructure:"value" json:"value,omitempty"`
	PlistPath string `mapstructure:"plist_path" json:"plist_path,omitempty"`
}

type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval" json:"interval"`
}

type ExtensionConfig struct {
	Socket   string        `mapstructure:"socket" json:"socket,omitempty"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
	Interval time.Duration `mapstructure:"interval" json:"interval"`
}

var Defaults = map[string]any{
	"log_level":             "info",
	"min_os_version":        sip.MinimumVersion.String(),
	"live.source":           LiveKernel,
	"live.fixed_config":     "0x0",
	"nvram.source":          NVRAMIOKit,
	"nvram.file":            "",
	"nvram.tool_path":       "/usr/sbin/nvram",
	"nvram.timeout":         DefaultNVRAMTimeout.String(),
	"os_version.source":     "auto",
	"os_version.value":      "",
	"os_version.plist_path": "",
	"http_addr":             DefaultHTTPAddr,
	"watch.interval":        DefaultWatchInterval.String(),
	"extension.socket":      "",
	"extension.timeout":     "3s",
	"extension.interval":    "3s",
}

func (c *Config) GetHTTPAddr() string {
	if c.HTTPAddr == "" {
		c.HTTPAddr = DefaultHTTPAddr
	}
	return c.HTTPAddr
}

func (c *Config) GetWatchInterval() time.Duration {
	if c.Watch.Interval <= 0 {
		return DefaultWatchInterval
	}
	return c.Watch.Interval
}

func (c *Config) GetWebhook() *Webhook {
	return c.Webhook
}

// GetMinOSVersion parses min_os_version, falling back to the first SIP
// release when unset.
func (c *Config) GetMinOSVersion() (sip.OSVersion, error) {
	if c.MinOSVersion == "" {
		return sip.MinimumVersion, nil
	}
	return sip.ParseOSVersion(c.MinOSVersion)
}
