package main

import "fmt"

func cmdAudit() {
	limit := intFlag("limit", 20)

	a := openApp()
	defer a.close()

	entries, err := a.audit.Recent(limit)
	if err != nil {
		fatal("read audit log: %v", err)
	}

	if len(entries) == 0 {
		fmt.Println("No audit entries.")
		return
	}

	for _, e := range entries {
		fmt.Printf("%-20s %-10s %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.Name)
	}
}
