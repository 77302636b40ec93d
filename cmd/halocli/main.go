package main

import "halo_sync/cmd/halocli/cmd"

func main() {
	cmd.Execute()
}
