package main

import "fmt"

func cmdRotate() {
	name, ok := positional(0)
	if !ok {
		fatal("usage: autifyme rotate <name> [value]")
	}

	value, ok := positional(1)
	if !ok {
		var err error
		value, err = promptSecret(fmt.Sprintf("New value for %s: ", name))
		if err != nil {
			fatal("reading value: %v", err)
		}
	}
	if value == "" {
		fatal("value must not be empty")
	}

	a := openApp()
	defer a.close()

	rotated, err := a.store.Rotate(name, value)
	if err != nil {
		fatal("rotate %s: %v", name, err)
	}
	if !rotated {
		fatal("credential %s not found; use store to create it", name)
	}
	fmt.Printf("Rotated %s\n", name)
}
