// Command skillhub syncs Claude Skill repositories from GitHub into
// PostgreSQL and generates their page content.
//
// Usage:
//
//	skillhub sync             one sync run, prints {"synced": n}
//	skillhub enrich           one enrichment batch, prints {"enriched": n}
//	skillhub serve            health endpoints and the trigger API
//	skillhub migrate [up|down|status]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
