package main

import (
	"github.com/mj1618/keymacro/cmd"

	_ "github.com/mj1618/keymacro/internal/platform/native"
)

func main() {
	cmd.Execute()
}
