package main

import "github.com/pmcfadin/post-database-era-sub002/cmd"

func main() {
	cmd.Execute()
}
