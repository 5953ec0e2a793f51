//go:build !darwin && !windows

package main

import "os/exec"

// UnixPlatform opens pages with xdg-open.
type UnixPlatform struct{}

func NewPlatform() Platform { return &UnixPlatform{} }

func (p *UnixPlatform) OpenURL(url string) error {
	return exec.Command("xdg-open", url).Start()
}
