package main

import (
	"fmt"
	"sort"
)

func cmdList() {
	a := openApp()
	defer a.close()

	list := a.store.List()
	if hasFlag("json") {
		printJSON(list)
		return
	}

	if len(list) == 0 {
		fmt.Println("No credentials stored.")
		return
	}

	names := make([]string, 0, len(list))
	for name := range list {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		meta := list[name]
		flags := ""
		if !meta.Encrypted {
			flags += " [plaintext]"
		}
		if meta.IsExpired {
			flags += " [expired]"
		}
		expiry := "-"
		if meta.ExpiresAt != nil {
			expiry = meta.ExpiresAt.Format("2006-01-02")
		}
		fmt.Printf("%-30s %-8s expires=%s%s\n", name, meta.ValidationStatus, expiry, flags)
	}
}
