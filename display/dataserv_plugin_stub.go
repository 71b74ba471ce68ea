//go:build nomidi

package cyclorama

func (v *View) getMIDISystemInfo(systemInfo *SystemInfo) {}
