package main

import (
	"fmt"
	"sort"

	"github.com/akeshr/autifyme/internal/credential"
)

func cmdValidate() {
	a := openApp()
	defer a.close()

	if hasFlag("all") {
		results, err := a.store.ValidateAll(credential.DefaultValidators())
		if err != nil {
			fatal("validate: %v", err)
		}

		names := make([]string, 0, len(results))
		for name := range results {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			status := "invalid"
			if results[name] {
				status = "valid"
			}
			fmt.Printf("%-30s %s\n", name, status)
		}
		return
	}

	name, ok := positional(0)
	if !ok {
		fatal("usage: autifyme validate <name> | validate --all")
	}

	validator, ok := credential.DefaultValidators()[name]
	if !ok {
		fatal("no validator registered for %s", name)
	}

	valid, err := a.store.Validate(name, validator)
	if err != nil {
		fatal("validate %s: %v", name, err)
	}
	if valid {
		fmt.Printf("%s is valid\n", name)
	} else {
		fmt.Printf("%s is invalid\n", name)
	}
}
