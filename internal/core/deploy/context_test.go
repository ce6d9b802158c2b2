package deploy

import (
	"testing"

	"github.com/shipit-dev/shipit/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewContextFromSettings(t *testing.T) {
	ctx := NewContext(config.Settings{
		Host: "example.com",
		Path: "/srv/app",
		User: "deployer",
		Port: 2222,
	}, "", false)

	assert.Equal(t, "example.com", ctx.Host)
	assert.Equal(t, "deployer", ctx.User)
	assert.Equal(t, 2222, ctx.Port)
	assert.Equal(t, "/srv/app", ctx.Path)
	assert.False(t, ctx.Verbose)
}

func TestNewContextHostOverride(t *testing.T) {
	ctx := NewContext(config.Settings{Host: "example.com", Path: "/srv"}, "staging.example.com", true)

	assert.Equal(t, "staging.example.com", ctx.Host)
	assert.True(t, ctx.Verbose)
}

func TestNewContextUserAndPortInHost(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		wantHost string
		wantUser string
		wantPort int
	}{
		{"plain host", "example.com", "example.com", "", 0},
		{"user at host", "root@example.com", "example.com", "root", 0},
		{"host with port", "example.com:2200", "example.com", "", 2200},
		{"user host port", "deploy@example.com:2200", "example.com", "deploy", 2200},
		{"bare ipv6", "::1", "::1", "", 0},
		{"full ipv6", "2001:db8::1", "2001:db8::1", "", 0},
		{"bracketed ipv6 with port", "[::1]:2200", "::1", "", 2200},
		{"user at bare ipv6", "root@::1", "::1", "root", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(config.Settings{Host: tt.host, Path: "/srv"}, "", false)
			assert.Equal(t, tt.wantHost, ctx.Host)
			assert.Equal(t, tt.wantUser, ctx.User)
			assert.Equal(t, tt.wantPort, ctx.Port)
		})
	}
}

func TestNewContextHostPartsWinOverHeaderKeys(t *testing.T) {
	ctx := NewContext(config.Settings{
		Host: "admin@example.com:2200",
		Path: "/srv",
		User: "deployer",
		Port: 22,
	}, "", false)

	assert.Equal(t, "admin", ctx.User)
	assert.Equal(t, 2200, ctx.Port)
}

func TestContextGetPortDefault(t *testing.T) {
	ctx := &Context{}
	assert.Equal(t, 22, ctx.GetPort())

	ctx.Port = 2222
	assert.Equal(t, 2222, ctx.GetPort())
}

func TestContextAddr(t *testing.T) {
	ctx := &Context{Host: "example.com"}
	assert.Equal(t, "example.com:22", ctx.Addr())

	ctx.Port = 2200
	assert.Equal(t, "example.com:2200", ctx.Addr())
}

func TestContextAddrIPv6(t *testing.T) {
	ctx := &Context{Host: "::1"}
	assert.Equal(t, "[::1]:22", ctx.Addr())
}
