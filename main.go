// The main package for the pagearchiver executable.
package main

import "pagearchiver/cmd"

func main() {
	cmd.Execute()
}
