package main

import "fmt"

func cmdStatus() {
	a := openApp()
	defer a.close()

	list := a.store.List()
	expired, validated := 0, 0
	for _, meta := range list {
		if meta.IsExpired {
			expired++
		}
		if meta.LastValidated != nil {
			validated++
		}
	}

	fmt.Printf("Credentials:    %d\n", len(list))
	fmt.Printf("Expired:        %d\n", expired)
	fmt.Printf("Validated:      %d\n", validated)
	fmt.Printf("Expiring (7d):  %d\n", len(a.store.ExpiringWithin(7)))
	fmt.Printf("Store file:     %s\n", a.cfg.Paths.CredentialsFile)
	fmt.Printf("Audit log:      %s\n", a.cfg.Paths.AuditDB)
}
