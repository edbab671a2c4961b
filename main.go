package main

import "cradlewatch/cmd"

func main() {
	cmd.Execute()
}
