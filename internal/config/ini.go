package config

import (
	"fmt"
	"strconv"
	"strings"

	ini "github.com/vaughan0/go-ini"
)

// LoadINI overlays settings from an INI file onto cfg. Keys that are absent
// leave cfg untouched.
//
//	[server]
//	address = 127.0.0.1
//	port = 1012
//
//	[multicast]
//	group = 233.1.1.101
//	port = 1105
//	interface = 127.0.0.1
//	ttl = 2
//	loopback = false
//
//	[log]
//	level = info
//	format = text
func LoadINI(path string, cfg *Config) error {
	f, err := ini.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return apply(f, cfg)
}

func apply(f ini.File, cfg *Config) error {
	var errs []string
	str := func(section, key string, dst *string) {
		if v, ok := f.Get(section, key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	port := func(section, key string, dst *uint16) {
		v, ok := f.Get(section, key)
		if !ok {
			return
		}
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 16)
		if err != nil {
			errs = append(errs, fmt.Sprintf("[%s] %s: %v", section, key, err))
			return
		}
		*dst = uint16(n)
	}

	str("", "mode", &cfg.Mode)
	str("", "role", &cfg.Role)

	str("server", "address", &cfg.ServerAddress)
	port("server", "port", &cfg.ServerPort)

	str("multicast", "group", &cfg.MulticastGroup)
	port("multicast", "port", &cfg.MulticastPort)
	str("multicast", "interface", &cfg.MulticastInterface)
	if v, ok := f.Get("multicast", "ttl"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Sprintf("[multicast] ttl: %v", err))
		} else {
			cfg.TTL = n
		}
	}
	if v, ok := f.Get("multicast", "loopback"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Sprintf("[multicast] loopback: %v", err))
		} else {
			cfg.MulticastLoopback = b
		}
	}

	str("log", "level", &cfg.LogLevel)
	str("log", "format", &cfg.LogFormat)

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
