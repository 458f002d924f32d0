// Package browser opens conference links with the desktop's URL handler.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// DisableEnvVar turns Open into a no-op when set, for tests and headless use.
const DisableEnvVar = "CONFSCHED_NO_BROWSER"

// ErrNoLink is returned for an empty link.
var ErrNoLink = errors.New("conference has no link")

// Opener opens a link.
type Opener interface {
	Open(link string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(link string) error

func (f OpenerFunc) Open(link string) error { return f(link) }

// System opens links with the platform handler.
var System Opener = OpenerFunc(Open)

// Normalize returns link with https:// added when it has no scheme.
func Normalize(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", ErrNoLink
	}
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", link, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid link %q: missing host", link)
	}
	return u.String(), nil
}

// Open starts the platform URL handler for link and returns without waiting
// for it.
func Open(link string) error {
	target, err := Normalize(link)
	if err != nil {
		return err
	}
	if os.Getenv(DisableEnvVar) != "" {
		return nil
	}

	cmd, err := command(runtime.GOOS, target)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	// Reap the handler so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

func command(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	}
	return nil, fmt.Errorf("unsupported platform: %s", goos)
}
