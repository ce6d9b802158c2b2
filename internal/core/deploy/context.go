package deploy

import (
	"net"
	"strconv"
	"strings"

	"github.com/shipit-dev/shipit/internal/config"
)

// Context carries the connection settings for one invocation. It is
// built once after the config is loaded and not modified afterwards.
type Context struct {
	Host     string
	Port     int
	User     string
	Path     string
	Identity string
	Verbose  bool
}

// NewContext builds a Context from the parsed settings, letting a
// non-empty hostOverride replace the configured host. Both the settings
// host and the override accept `user@host` and `host:port` forms; parts
// present in the host string win over the separate header keys.
func NewContext(settings config.Settings, hostOverride string, verbose bool) *Context {
	ctx := &Context{
		Host:     settings.Host,
		Port:     settings.Port,
		User:     settings.User,
		Path:     settings.Path,
		Identity: settings.Identity,
		Verbose:  verbose,
	}

	if hostOverride != "" {
		ctx.Host = hostOverride
	}

	if at := strings.LastIndex(ctx.Host, "@"); at >= 0 {
		ctx.User = ctx.Host[:at]
		ctx.Host = ctx.Host[at+1:]
	}

	// SplitHostPort rejects bare IPv6 literals like ::1, so those pass
	// through unchanged; bracketed forms like [::1]:2200 split cleanly.
	if host, portStr, err := net.SplitHostPort(ctx.Host); err == nil {
		if port, err := strconv.Atoi(portStr); err == nil {
			ctx.Port = port
			ctx.Host = host
		}
	}

	return ctx
}

// GetPort returns the SSH port to use, defaulting to 22.
func (c *Context) GetPort() int {
	if c.Port == 0 {
		return 22
	}
	return c.Port
}

// Addr returns the dial address for the SSH transport, bracketing IPv6
// hosts as needed.
func (c *Context) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.GetPort()))
}
