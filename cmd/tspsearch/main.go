// Command tspsearch solves small travelling-salesman instances with Greedy
// best-first, uniform-cost and A* search, prints their step traces, compares
// the strategies, and serves the same operations over HTTP.
//
//	tspsearch solve --scenario 2 --strategy astar --trace --pace 200ms
//	tspsearch compare --random 9 --seed 7 --offline
//	tspsearch serve --config tspsearch.yaml
//	tspsearch cache stats
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
