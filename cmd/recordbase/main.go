package main

import (
	"recordbase/cmd/recordbase/cmd"
)

func main() {
	cmd.Execute()
}
