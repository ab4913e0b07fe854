package main

import (
	"fmt"
	"sort"
)

func cmdExpiring() {
	days := intFlag("days", 7)

	a := openApp()
	defer a.close()

	expiring := a.store.ExpiringWithin(days)
	if len(expiring) == 0 {
		fmt.Printf("No credentials expiring within %d days.\n", days)
		return
	}

	names := make([]string, 0, len(expiring))
	for name := range expiring {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cred := expiring[name]
		fmt.Printf("%-30s expires %s\n", name, cred.ExpiresAt.Format("2006-01-02 15:04"))
	}
}
