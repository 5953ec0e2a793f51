//go:build darwin

package main

import "os/exec"

// DarwinPlatform opens pages with the macOS open(1) command.
type DarwinPlatform struct{}

func NewPlatform() Platform { return &DarwinPlatform{} }

func (p *DarwinPlatform) OpenURL(url string) error {
	return exec.Command("open", url).Start()
}
