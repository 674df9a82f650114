package nvram

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/sipconfig/internal/sip"
)

const nvramDump = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>SystemAudioVolume</key>
	<data>Rw==</data>
	<key>boot-args</key>
	<string>-v</string>
	<key>csr-active-config</key>
	<data>dwAAAA==</data>
</dict>
</plist>
`

func writeDump(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "nvram.plist")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestPlistStore_File(t *testing.T) {
	r := NewReader(NewPlistStore(FileSource(writeDump(t, nvramDump))))
	out := r.ReadPersisted()

	require.Equal(t, sip.OutcomeSuccess, out.Kind, "%v", out.Err)
	assert.Equal(t, sip.ConfigWord(0x77), out.Word)
}

func TestPlistStore_StringValueIsTypeMismatch(t *testing.T) {
	r := NewReader(NewPlistStore(FileSource(writeDump(t, nvramDump))))
	r.Key = "boot-args"
	assert.Equal(t, sip.OutcomeError, r.ReadPersisted().Kind)
}

func TestPlistStore_MissingKey(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict><key>boot-args</key><string>-v</string></dict></plist>`
	r := NewReader(NewPlistStore(FileSource(writeDump(t, body))))
	assert.Equal(t, sip.OutcomeNotFound, r.ReadPersisted().Kind)
}

func TestPlistStore_MissingFile(t *testing.T) {
	r := NewReader(NewPlistStore(FileSource(filepath.Join(t.TempDir(), "absent.plist"))))
	assert.Equal(t, sip.OutcomeError, r.ReadPersisted().Kind)
}

func TestPlistStore_Garbage(t *testing.T) {
	r := NewReader(NewPlistStore(FileSource(writeDump(t, "not a plist"))))
	assert.Equal(t, sip.OutcomeError, r.ReadPersisted().Kind)
}

func TestPlistStore_OtherPath(t *testing.T) {
	s := NewPlistStore(FileSource(writeDump(t, nvramDump)))
	_, err := s.Open("IODeviceTree:/chosen")
	assert.Error(t, err)
}

func TestToolSource_MissingTool(t *testing.T) {
	src := ToolSource(filepath.Join(t.TempDir(), "nvram"), time.Second)
	out := NewReader(NewPlistStore(src)).ReadPersisted()
	assert.Equal(t, sip.OutcomeUnavailable, out.Kind)
}
