//go:build darwin || linux

package occlusion

import "golang.org/x/sys/unix"

// occlusionYield gives up the remainder of the current OS timeslice so a
// timer-query poll loop backs off without busy-spinning.
func occlusionYield() {
	unix.Nanosleep(&unix.Timespec{Sec: 0, Nsec: 0}, nil)
}
