package main

// Platform abstracts OS-specific UI operations.
type Platform interface {
	OpenURL(url string) error
}
