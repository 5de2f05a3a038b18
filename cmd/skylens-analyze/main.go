package main

import (
	"context"
	"flag"
	"time"

	"skylens/internal/adapters/bluesky"
	"skylens/internal/core/textstats"
	"skylens/internal/platform/config"
	"skylens/internal/platform/logger"
	"skylens/internal/platform/store"

	"skylens/internal/services/api/analysis/domain"
	analysissvc "skylens/internal/services/api/analysis/service"
	resultsrepo "skylens/internal/services/api/results/repo"
	resultssvc "skylens/internal/services/api/results/service"
)

func main() {
	root := config.New()
	resCfg := root.Prefix("RESULTS_")
	bskyCfg := root.Prefix("BLUESKY_")

	l := logger.Get()

	var (
		fQuery = flag.String("query", "", "search term (required)")
		fStart = flag.String("start", "", "inclusive ISO start date YYYY-MM-DD")
		fEnd   = flag.String("end", "", "inclusive ISO end date YYYY-MM-DD")
		fLimit = flag.Int("limit", 0, "page size, defaults to the platform cap")
	)
	flag.Parse()

	st, err := store.Open(
		store.Config{
			ResultsDir: resCfg.MayString("DIR", "saved_results"),
			ScratchDir: resCfg.MayString("SCRATCH", "scratch"),
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}

	results := resultssvc.New(st, resultsrepo.NewFS())
	svc := analysissvc.New(
		bluesky.New(bluesky.FromConfig(bskyCfg)),
		results,
		textstats.New(),
		analysissvc.CredentialsFromConfig(bskyCfg),
	)

	in := domain.AnalyzeInput{Query: *fQuery, Limit: *fLimit}
	if *fStart != "" {
		d, err := time.Parse("2006-01-02", *fStart)
		if err != nil {
			l.Panic().Str("start", *fStart).Err(err).Msg("invalid start date")
		}
		in.Start = d.UTC()
	}
	if *fEnd != "" {
		d, err := time.Parse("2006-01-02", *fEnd)
		if err != nil {
			l.Panic().Str("end", *fEnd).Err(err).Msg("invalid end date")
		}
		in.End = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999_000_000, time.UTC)
	}

	rep, err := svc.Run(context.Background(), in)
	if err != nil {
		l.Panic().Err(err).Msg("analysis run failed")
	}

	l.Info().
		Str("query", *fQuery).
		Int("count", rep.Count).
		Int("skipped", rep.Skipped).
		Msg(rep.Message)
}
