package main

import "github.com/goplus/llexport/cmd/llexport/internal"

func main() {
	internal.Execute()
}
