package main

import "github.com/frahmantamala/project-console/cmd"

func main() {
	cmd.Execute()
}
