package main

import "bulk-ingest/cmd"

func main() {
	cmd.Execute()
}
