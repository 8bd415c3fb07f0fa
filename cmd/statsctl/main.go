package main

import "github.com/g5stats/stats-api/cmd/statsctl/cmd"

func main() {
	cmd.Execute()
}
