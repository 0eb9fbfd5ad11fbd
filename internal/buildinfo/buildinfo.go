package buildinfo

import (
	"runtime/debug"
	"strings"
)

// Info describes the running binary.
type Info struct {
	Module    string            `json:"module"`
	Version   string            `json:"version"`
	GoVersion string            `json:"goVersion"`
	VCS       map[string]string `json:"vcs,omitempty"`
}

// Read returns build info embedded into the binary, ok is false when the
// binary was built without module support.
func Read() (Info, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}, false
	}
	return fromBuildInfo(bi), true
}

func fromBuildInfo(bi *debug.BuildInfo) Info {
	info := Info{Module: bi.Main.Path, Version: bi.Main.Version, GoVersion: bi.GoVersion}
	for _, s := range bi.Settings {
		if key, ok := strings.CutPrefix(s.Key, "vcs."); ok {
			if info.VCS == nil {
				info.VCS = make(map[string]string)
			}
			info.VCS[key] = s.Value
		}
	}
	return info
}

// String formats VCS settings as space separated key=value pairs, suitable for log messages.
func (i Info) String() string {
	var sb strings.Builder
	for _, k := range []string{"revision", "time", "modified"} {
		if v, ok := i.VCS[k]; ok {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString("vcs." + k + "=" + v)
		}
	}
	return sb.String()
}
