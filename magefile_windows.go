//go:build mage && windows
// +build mage,windows

package main

func setULimit() error {
	return nil
}
