package config

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ini "github.com/vaughan0/go-ini"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.ServerAddress != "127.0.0.1" || cfg.ServerPort != 1012 {
		t.Fatalf("server %s:%d", cfg.ServerAddress, cfg.ServerPort)
	}
	if cfg.MulticastGroup != "233.1.1.101" || cfg.MulticastPort != 1105 || cfg.TTL != 2 {
		t.Fatalf("multicast %s:%d ttl %d", cfg.MulticastGroup, cfg.MulticastPort, cfg.TTL)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "multicast mode", mutate: func(c *Config) { c.Mode = "multicast" }},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "sctp" }, wantErr: true},
		{name: "unknown role", mutate: func(c *Config) { c.Role = "proxy" }, wantErr: true},
		{name: "hostname server", mutate: func(c *Config) { c.ServerAddress = "localhost" }, wantErr: true},
		{name: "unicast group", mutate: func(c *Config) { c.Mode = "multicast"; c.MulticastGroup = "10.0.0.1" }, wantErr: true},
		{name: "unicast group ignored in tcp mode", mutate: func(c *Config) { c.MulticastGroup = "10.0.0.1" }},
		{name: "ttl too large", mutate: func(c *Config) { c.TTL = 256 }, wantErr: true},
		{name: "zero accept timeout", mutate: func(c *Config) { c.AcceptTimeout = 0 }, wantErr: true},
		{name: "bad keepalive", mutate: func(c *Config) { c.KeepAlive = "1:2" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "json format", mutate: func(c *Config) { c.LogFormat = "json" }},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestParseTCPKeepAlive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    net.KeepAliveConfig
		wantErr bool
	}{
		{in: "on", want: net.KeepAliveConfig{Enable: true}},
		{in: " OFF ", want: net.KeepAliveConfig{}},
		{in: "45:45:3", want: net.KeepAliveConfig{Enable: true, Idle: 45 * time.Second, Interval: 45 * time.Second, Count: 3}},
		{in: "", wantErr: true},
		{in: "0:1:1", wantErr: true},
		{in: "a:b:c", wantErr: true},
		{in: "1:2:3:4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTCPKeepAlive(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
		})
	}
}

func TestApplyINI(t *testing.T) {
	t.Parallel()

	f, err := ini.Load(strings.NewReader(`mode = multicast

[server]
address = 10.1.2.3
port = 2020

[multicast]
group = 239.1.2.3
port = 3030
interface = 0.0.0.0
ttl = 8
loopback = true

[log]
level = debug
format = json
`))
	if err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := apply(f, &cfg); err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Mode = "multicast"
	want.ServerAddress = "10.1.2.3"
	want.ServerPort = 2020
	want.MulticastGroup = "239.1.2.3"
	want.MulticastPort = 3030
	want.MulticastInterface = "0.0.0.0"
	want.TTL = 8
	want.MulticastLoopback = true
	want.LogLevel = "debug"
	want.LogFormat = "json"
	if cfg != want {
		t.Fatalf("got %+v\nwant %+v", cfg, want)
	}
}

func TestApplyINIErrors(t *testing.T) {
	t.Parallel()

	f, err := ini.Load(strings.NewReader("[server]\nport = 70000\n[multicast]\nttl = x\nloopback = maybe\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	err = apply(f, &cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"port", "ttl", "loopback"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
	if cfg.ServerPort != 1012 || cfg.TTL != 2 {
		t.Fatal("invalid values must not be applied")
	}
}

func TestLoadINIFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "xsocket.ini")
	if err := os.WriteFile(path, []byte("[server]\nport = 4040\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := LoadINI(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.ServerPort != 4040 {
		t.Fatalf("port=%d", cfg.ServerPort)
	}

	if err := LoadINI(filepath.Join(t.TempDir(), "missing.ini"), &cfg); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogger(&buf, "warn", "json")
	log.Info("hidden")
	log.Warn("shown", "peer", "127.0.0.1:1012")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"peer":"127.0.0.1:1012"`) {
		t.Fatalf("missing json attribute: %s", out)
	}
}
