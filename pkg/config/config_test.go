package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type word uint32

func (w *word) UnmarshalText(b []byte) error {
	*w = word(len(b))
	return nil
}

type sample struct {
	Name     string            `mapstructure:"name"`
	Timeout  time.Duration     `mapstructure:"timeout"`
	Headers  map[string]string `mapstructure:"headers"`
	Sources  []string          `mapstructure:"sources"`
	Word     word              `mapstructure:"word"`
	Nested   struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"nested"`
}

func TestNew_RequiresApp(t *testing.T) {
	_, err := New("", t.TempDir(), "", "", false)
	assert.ErrorIs(t, err, ErrMissingConfigName)
}

func TestPrepareDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, PrepareDir(dir))
	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())

	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	assert.ErrorIs(t, PrepareDir(file), ErrInvalidDirectory)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	m, err := New("sample", t.TempDir(), "", "", false)
	require.NoError(t, err)
	SetDefaults(m.Viper, map[string]any{"name": "default", "timeout": "3s"})

	var s sample
	require.NoError(t, m.Load(&s))
	assert.Equal(t, "default", s.Name)
	assert.Equal(t, 3*time.Second, s.Timeout)
}

func TestLoad_FileAndHooks(t *testing.T) {
	dir := t.TempDir()
	body := `name: from-file
timeout: 1m
headers: "a=1, b = 2"
sources: "x, y"
word: abcd
nested:
  enabled: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.yaml"), []byte(body), 0o600))

	m, err := New("sample", dir, "", "", false)
	require.NoError(t, err)

	var s sample
	require.NoError(t, m.Load(&s))
	assert.Equal(t, "from-file", s.Name)
	assert.Equal(t, time.Minute, s.Timeout)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, s.Headers)
	assert.Equal(t, []string{"x", "y"}, s.Sources)
	assert.Equal(t, word(4), s.Word)
	assert.True(t, s.Nested.Enabled)
	assert.Equal(t, filepath.Join(dir, "sample.yaml"), m.File())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SAMPLEAPP_NESTED_ENABLED", "true")
	t.Setenv("SAMPLEAPP_NAME", "from-env")

	m, err := New("sample", t.TempDir(), "", "sampleapp", false)
	require.NoError(t, err)
	SetDefaults(m.Viper, map[string]any{"name": "", "nested.enabled": false})

	var s sample
	require.NoError(t, m.Load(&s))
	assert.Equal(t, "from-env", s.Name)
	assert.True(t, s.Nested.Enabled)
}

func TestLoad_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.yaml"), []byte("name: [unterminated"), 0o600))

	m, err := New("sample", dir, "", "", false)
	require.NoError(t, err)
	var s sample
	assert.Error(t, m.Load(&s))
}

func TestSetConfig_Writes(t *testing.T) {
	dir := t.TempDir()
	m, err := New("sample", dir, "", "", true)
	require.NoError(t, err)

	require.NoError(t, m.SetConfig("name", "written"))
	assert.Equal(t, "written", m.Viper.GetString("name"))

	b, err := os.ReadFile(filepath.Join(dir, "sample.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "written")
}

func TestWatch_DecodesIntoFreshValue(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sample.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: first\n"), 0o600))

	m, err := New("sample", dir, "", "", false)
	require.NoError(t, err)
	var s sample
	require.NoError(t, m.Load(&s))
	require.Equal(t, "first", s.Name)

	var (
		mu  sync.Mutex
		got []*sample
	)
	m.Watch(func() interface{} { return &sample{} }, func(conf interface{}) {
		mu.Lock()
		got = append(got, conf.(*sample))
		mu.Unlock()
	})
	seen := func(name string) *sample {
		mu.Lock()
		defer mu.Unlock()
		for _, g := range got {
			if g.Name == name {
				return g
			}
		}
		return nil
	}

	require.NoError(t, os.WriteFile(file, []byte("name: second\n"), 0o600))
	require.Eventually(t, func() bool { return seen("second") != nil }, 5*time.Second, 10*time.Millisecond)
	second := seen("second")

	// undecodable duration: never handed out
	require.NoError(t, os.WriteFile(file, []byte("name: third\ntimeout: soon\n"), 0o600))
	require.NoError(t, os.WriteFile(file, []byte("name: fourth\n"), 0o600))
	require.Eventually(t, func() bool { return seen("fourth") != nil }, 5*time.Second, 10*time.Millisecond)

	assert.Nil(t, seen("third"))
	assert.Equal(t, "second", second.Name)
	assert.Equal(t, "first", s.Name)
}
