package main

import (
	"spot-scraper/cmd/spot-cli/commands"
	"spot-scraper/pkg/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
