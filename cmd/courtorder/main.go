// courtorder runs the court-order pipeline from the command line.
//
// Usage:
//
//	courtorder process <file.pdf> [--json]
//	courtorder extract-text <file.pdf>
//	courtorder infer <file.txt|->
//	courtorder customers check
//	courtorder customers import <file.csv|file.xlsx>
//	courtorder mcp
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
