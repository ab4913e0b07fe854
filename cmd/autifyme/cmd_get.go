package main

import "fmt"

func cmdGet() {
	name, ok := positional(0)
	if !ok {
		fatal("usage: autifyme get <name>")
	}

	a := openApp()
	defer a.close()

	value, ok := a.store.Get(name)
	if !ok {
		fatal("credential %s not found (store or environment)", name)
	}
	fmt.Println(value)
}
