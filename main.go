package main

import "github.com/jmehdipour/whatsapp-gateway/cmd"

func main() {
	cmd.Execute()
}
