//go:build mage && !windows
// +build mage,!windows

package main

import (
	"syscall"
)

const openFileLimit = 16384

// every fake user holds a websocket plus ICE sockets per content
func setULimit() error {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return err
	}
	if rLimit.Cur >= openFileLimit {
		return nil
	}
	rLimit.Cur = openFileLimit
	if rLimit.Max < rLimit.Cur {
		rLimit.Max = rLimit.Cur
	}
	return syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
}
