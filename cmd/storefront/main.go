package main

import "github.com/indian-sparrow/storefront/cmd/storefront/cmd"

func main() {
	cmd.Execute()
}
