package sip

// Flag is one named CSR exception bit.
// Bits and names come from xnu bsd/sys/csr.h.
type Flag struct {
	Name        string     `json:"name" yaml:"name"`
	Bit         ConfigWord `json:"bit" yaml:"bit"`
	Constant    string     `json:"constant" yaml:"constant"`
	Description string     `json:"description" yaml:"description"`
}

// Index returns the bit position of f.
func (f Flag) Index() int {
	for i := 0; i < 32; i++ {
		if f.Bit == 1<<i {
			return i
		}
	}
	return -1
}

// AggregateFlag is the config_flag of the synthetic row summarizing all flags.
const AggregateFlag = "sip"

var flags = [...]Flag{
	{"allow_untrusted_kexts", 1 << 0, "CSR_ALLOW_UNTRUSTED_KEXTS", "load kernel extensions without a trusted signature"},
	{"allow_unrestricted_fs", 1 << 1, "CSR_ALLOW_UNRESTRICTED_FS", "write to SIP protected filesystem locations"},
	{"allow_task_for_pid", 1 << 2, "CSR_ALLOW_TASK_FOR_PID", "obtain task ports of protected processes"},
	{"allow_kernel_debugger", 1 << 3, "CSR_ALLOW_KERNEL_DEBUGGER", "attach a kernel debugger"},
	{"allow_apple_internal", 1 << 4, "CSR_ALLOW_APPLE_INTERNAL", "enable Apple internal behaviour"},
	{"allow_unrestricted_dtrace", 1 << 5, "CSR_ALLOW_UNRESTRICTED_DTRACE", "run dtrace against protected processes"},
	{"allow_unrestricted_nvram", 1 << 6, "CSR_ALLOW_UNRESTRICTED_NVRAM", "modify protected NVRAM variables"},
	{"allow_device_configuration", 1 << 7, "CSR_ALLOW_DEVICE_CONFIGURATION", "allow device configuration changes"},
}

// ValidMask is the OR of every registered flag bit.
var ValidMask = func() ConfigWord {
	var m ConfigWord
	for _, f := range flags {
		m |= f.Bit
	}
	return m
}()

// Flags returns the registry in declaration order. The slice is a copy.
func Flags() []Flag {
	out := make([]Flag, len(flags))
	copy(out, flags[:])
	return out
}

// LookupFlag finds a flag by name.
func LookupFlag(name string) (Flag, bool) {
	for _, f := range flags {
		if f.Name == name {
			return f, true
		}
	}
	return Flag{}, false
}

// FlagState is a flag together with whether a given word sets it.
type FlagState struct {
	Flag
	Set bool `json:"set" yaml:"set"`
}

// Decompose reports every registered flag against w, in registry order.
func Decompose(w ConfigWord) []FlagState {
	out := make([]FlagState, 0, len(flags))
	for _, f := range flags {
		out = append(out, FlagState{Flag: f, Set: w.Has(f.Bit)})
	}
	return out
}
