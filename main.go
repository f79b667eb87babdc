package main

import (
	"context"

	"github.com/hopeIsCo0l/AnuTest/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
