//go:build !windows

package process

import "syscall"

// KillTree sends SIGKILL to the whole process group led by pid, so Chrome's
// renderer and GPU helpers die with the browser.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
