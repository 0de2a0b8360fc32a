// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	admin := strings.TrimSpace(os.Getenv("ADMIN_API_KEYS"))
	pub := strings.TrimSpace(os.Getenv("PUBLIC_API_KEYS"))
	addr := strings.TrimSpace(os.Getenv("API_ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	redis := strings.TrimSpace(os.Getenv("REDIS_URL"))
	tick := strings.TrimSpace(os.Getenv("TICK_INTERVAL"))

	if admin == "" {
		warn("ADMIN_API_KEYS is empty — trigger and mutation routes will be open.")
	}
	if pub == "" {
		warn("PUBLIC_API_KEYS is empty — read routes will be open.")
	}

	// Normalize and sanity-check lists (no spaces around commas).
	for name, v := range map[string]string{"ADMIN_API_KEYS": admin, "PUBLIC_API_KEYS": pub} {
		if strings.Contains(v, " ") {
			warn(name + " contains spaces; use comma-separated with no spaces, e.g. key1,key2")
		}
	}

	if addr == "" {
		warn("API_ADDR is empty; the default bind address will be used.")
	} else {
		ok("API_ADDR=" + addr)
	}

	if db == "" {
		warn("DATABASE_URL empty — the engine will use in-memory stores; history is lost on restart.")
	} else {
		ok("DATABASE_URL present")
	}

	if redis == "" {
		warn("REDIS_URL empty — the check lease is process-local; run a single engine instance.")
	} else {
		ok("REDIS_URL present")
	}

	if tick != "" {
		if d, err := time.ParseDuration(tick); err != nil {
			fail("TICK_INTERVAL is not a duration: " + tick)
		} else if d < 10*time.Second {
			warn("TICK_INTERVAL below 10s will hammer the stores.")
		} else {
			ok("TICK_INTERVAL=" + tick)
		}
	}

	ok("preflight passed")
}
