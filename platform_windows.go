//go:build windows

package main

import "os/exec"

// WindowsPlatform opens pages through the URL protocol handler.
type WindowsPlatform struct{}

func NewPlatform() Platform { return &WindowsPlatform{} }

func (p *WindowsPlatform) OpenURL(url string) error {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
}
