package main

import (
	"fmt"

	"github.com/akeshr/autifyme/internal/service"
)

// cmdServices reports which service credential bundles can be assembled from
// the store. It never prints the values themselves.
func cmdServices() {
	a := openApp()
	defer a.close()

	reg := service.NewRegistry(a.store)
	checks := []struct {
		name string
		load func() error
	}{
		{"supabase", func() error { _, err := reg.Supabase(); return err }},
		{"postgres", func() error { _, err := reg.Postgres(); return err }},
		{"mongodb", func() error { _, err := reg.Mongo(); return err }},
		{"openai", func() error { _, err := reg.OpenAI(); return err }},
		{"anthropic", func() error { _, err := reg.Anthropic(); return err }},
		{"google", func() error { _, err := reg.Google(); return err }},
		{"google-drive", func() error { _, err := reg.GoogleDrive(); return err }},
		{"aws", func() error { _, err := reg.AWS(); return err }},
	}

	for _, c := range checks {
		if err := c.load(); err != nil {
			fmt.Printf("%-14s not configured\n", c.name)
		} else {
			fmt.Printf("%-14s ok\n", c.name)
		}
	}
}
