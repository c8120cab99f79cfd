package config

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/die-net/xsocket/internal/xsocket"
)

type Config struct {
	Mode string // "tcp" or "multicast"
	Role string // "both", "server" or "client"

	ServerAddress string
	ServerPort    uint16

	MulticastGroup     string
	MulticastPort      uint16
	MulticastInterface string
	TTL                int
	MulticastLoopback  bool

	DialTimeout   time.Duration
	AcceptTimeout time.Duration
	KeepAlive     string

	LogLevel  string
	LogFormat string
}

func Default() Config {
	return Config{
		Mode:               "tcp",
		Role:               "both",
		ServerAddress:      "127.0.0.1",
		ServerPort:         1012,
		MulticastGroup:     "233.1.1.101",
		MulticastPort:      1105,
		MulticastInterface: "127.0.0.1",
		TTL:                2,
		DialTimeout:        10 * time.Second,
		AcceptTimeout:      time.Second,
		KeepAlive:          "on",
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

func (c Config) Validate() error {
	switch c.Mode {
	case "tcp", "multicast":
	default:
		return fmt.Errorf("mode %q: expected tcp|multicast", c.Mode)
	}
	switch c.Role {
	case "both", "server", "client":
	default:
		return fmt.Errorf("role %q: expected both|server|client", c.Role)
	}
	if !isIPv4(c.ServerAddress) {
		return fmt.Errorf("server address %q: not an IPv4 literal", c.ServerAddress)
	}
	if c.Mode == "multicast" {
		if !xsocket.IsMulticastGroup(c.MulticastGroup) {
			return fmt.Errorf("multicast group %q: not in 224.0.0.0/4", c.MulticastGroup)
		}
		if !isIPv4(c.MulticastInterface) {
			return fmt.Errorf("multicast interface %q: not an IPv4 literal", c.MulticastInterface)
		}
	}
	if c.TTL < 0 || c.TTL > 255 {
		return fmt.Errorf("ttl %d: must be 0..255", c.TTL)
	}
	if c.AcceptTimeout <= 0 {
		return errors.New("accept timeout must be > 0")
	}
	if _, err := ParseTCPKeepAlive(c.KeepAlive); err != nil {
		return fmt.Errorf("tcp keepalive: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: expected text|json", c.LogFormat)
	}
	return nil
}

func isIPv4(s string) bool {
	ip, err := netip.ParseAddr(s)
	return err == nil && ip.Is4()
}
