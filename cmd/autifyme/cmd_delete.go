package main

import "fmt"

func cmdDelete() {
	name, ok := positional(0)
	if !ok {
		fatal("usage: autifyme delete <name>")
	}

	a := openApp()
	defer a.close()

	removed, err := a.store.Delete(name)
	if err != nil {
		fatal("delete %s: %v", name, err)
	}
	if !removed {
		fatal("credential %s not found", name)
	}
	fmt.Printf("Deleted %s\n", name)
}
