package main

import "github.com/frahmantamala/rbac-service/cmd"

func main() {
	cmd.Execute()
}
