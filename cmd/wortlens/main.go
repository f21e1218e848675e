// Command wortlens analyses and translates German documents.
package main

import "github.com/custodia-labs/wortlens/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
