// Command unisearch builds emoji and Unicode character datasets and searches
// them.
//
//	unisearch emoji --input emoji-test.txt --output emoji.json
//	unisearch ucd --unicodedata UnicodeData.txt --output ucd.json
//	unisearch gemoji --dataset emoji.json --gemoji gemoji.json
//	unisearch query --dataset emoji.json "description=cat&sort=emoji"
//	unisearch serve --root ./public
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/npillmayer/unisearch/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.ExecuteContext(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
