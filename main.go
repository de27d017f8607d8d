package main

import "github.com/ulasan/company-review/cmd"

func main() {
	cmd.Execute()
}
