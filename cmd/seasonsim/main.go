package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/ezBadminton/gotennis/internal"
	"github.com/ezBadminton/gotennis/tennis"
)

func main() {
	configPath := flag.String("config", "", "config file (yaml, toml or json)")
	flag.Parse()

	cfg, err := tennis.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seasonsim: %v\n", err)
		os.Exit(1)
	}

	log := internal.NewLogger(cfg.LogLevel, cfg.LogJSON)

	calendar, err := cfg.Calendar()
	if err != nil {
		log.WithError(err).Error("Unable to load the calendar")
		os.Exit(1)
	}
	calendarFields := logrus.Fields{"weeks": len(calendar.Weeks)}
	for variant, n := range calendar.CountByVariant() {
		calendarFields[variant.String()] = n
	}
	log.WithFields(calendarFields).Info("Calendar loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.WithFields(logrus.Fields{
		"runs":    cfg.Runs,
		"players": cfg.Players,
		"workers": cfg.Workers,
		"model":   cfg.GameModel,
	}).Info("Simulating seasons")

	results, err := tennis.RunSeasons(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("Simulation failed")
		os.Exit(1)
	}

	for _, s := range tennis.Summarize(results) {
		log.WithFields(logrus.Fields{
			"policy":      s.Policy,
			"players":     s.Players,
			"mean_points": fmt.Sprintf("%.1f", s.MeanPoints),
			"std_points":  fmt.Sprintf("%.1f", s.StdPoints),
			"mean_rank":   fmt.Sprintf("%.1f", s.MeanRanking),
			"titles":      fmt.Sprintf("%.2f", s.MeanTitles),
			"matches":     fmt.Sprintf("%.1f", s.MeanMatches),
			"win_rate":    fmt.Sprintf("%.3f", s.MeanWinRate),
			"injured":     fmt.Sprintf("%.3f", s.InjuredAtSeasonEnd),
		}).Info("Policy summary")
	}
}
