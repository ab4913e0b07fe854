package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "store":
		cmdStore()
	case "get":
		cmdGet()
	case "list":
		cmdList()
	case "delete":
		cmdDelete()
	case "rotate":
		cmdRotate()
	case "validate":
		cmdValidate()
	case "expiring":
		cmdExpiring()
	case "status":
		cmdStatus()
	case "audit":
		cmdAudit()
	case "services":
		cmdServices()
	case "serve":
		cmdServe()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: autifyme <command> [args]

Commands:
  store <name> [value]       Store a credential (prompts for the value if omitted)
                             --expires-days N   expire after N days
                             --plaintext        skip encryption at rest
  get <name>                 Print a credential value (env fallback applies)
  list                       List credential metadata (--json for raw JSON)
  delete <name>              Delete a credential
  rotate <name> [value]      Replace a credential value in place
  validate [name]            Validate a credential (--all for every known one)
  expiring [--days N]        Show credentials expiring within N days (default 7)
  status                     Show store summary
  audit [--limit N]          Show recent credential access entries
  services                   Show which service credentials are configured
  serve                      Run the local admin API in the foreground

Environment:
  AUTIFYME_CONFIG            Config file path (default autifyme.yaml)
  AUTIFYME_ADMIN_TOKEN       Bearer token required by the admin API`)
}
