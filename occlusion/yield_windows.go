//go:build windows

package occlusion

import "golang.org/x/sys/windows"

// occlusionYield gives up the remainder of the current OS timeslice so a
// timer-query poll loop backs off without busy-spinning.
func occlusionYield() {
	windows.SleepEx(0, false)
}
