package main

import "github.com/OpenTraceLab/OpenTraceRegs/cmd/otr/cmd"

func main() {
	cmd.Execute()
}
