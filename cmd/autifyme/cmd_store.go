package main

import (
	"fmt"
	"time"

	"github.com/akeshr/autifyme/internal/credential"
)

func cmdStore() {
	name, ok := positional(0)
	if !ok {
		fatal("usage: autifyme store <name> [value] [--expires-days N] [--plaintext]")
	}

	value, ok := positional(1)
	if !ok {
		var err error
		value, err = promptSecret(fmt.Sprintf("Value for %s: ", name))
		if err != nil {
			fatal("reading value: %v", err)
		}
	}
	if value == "" {
		fatal("value must not be empty")
	}

	a := openApp()
	defer a.close()

	var opts []credential.SetOption
	if days := intFlag("expires-days", 0); days > 0 {
		opts = append(opts, credential.WithExpiry(time.Now().AddDate(0, 0, days)))
	}
	if hasFlag("plaintext") {
		opts = append(opts, credential.WithoutEncryption())
	}

	if err := a.store.Set(name, value, opts...); err != nil {
		fatal("store %s: %v", name, err)
	}
	fmt.Printf("Stored %s\n", name)
}
