package main

import "StyleAdvisor/internal/cli"

func main() {
	cli.Execute()
}
