// SAXSKey - SAXS experiment planning and analysis calculators
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/SAXSKey/cmd/saxskey/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
