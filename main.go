package main

import "streamdesk-backend/cmd"

func main() {
	cmd.Execute()
}
