// Command prepare performs a one-shot load-validate-join cycle and prints a
// summary: rows loaded and dropped per source, merged row count, and the
// temperature bucket distribution. It can optionally write the merged table
// back out as CSV for inspection.
//
// Usage:
//
//	go run ./cmd/prepare \
//	  -match data/ipl_matches_sample.csv \
//	  -weather data/weather_sample.csv \
//	  -out merged.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/pitchside/matchweather/internal/domain"
	"github.com/pitchside/matchweather/internal/ingest"
)

func main() {
	matchPath := flag.String("match", "", "path to the match CSV")
	weatherPath := flag.String("weather", "", "path to the weather CSV")
	outPath := flag.String("out", "", "optional path to write the merged table as CSV")
	flag.Parse()

	if *matchPath == "" || *weatherPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*matchPath, *weatherPath, *outPath); code != 0 {
		os.Exit(code)
	}
}

func run(matchPath, weatherPath, outPath string) int {
	matches, err := ingest.LoadMatchesFile(matchPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	weather, err := ingest.LoadWeatherFile(weatherPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	merged := domain.Join(matches.Table, weather.Table)

	fmt.Printf("match rows:   %d loaded, %d dropped (%d unparseable date, %d bad value)\n",
		len(matches.Table.Rows), matches.Dropped.Total(),
		matches.Dropped.UnparseableDate, matches.Dropped.BadValue)
	fmt.Printf("weather rows: %d loaded, %d dropped (%d unparseable date, %d bad value)\n",
		len(weather.Table.Rows), weather.Dropped.Total(),
		weather.Dropped.UnparseableDate, weather.Dropped.BadValue)
	fmt.Printf("merged rows:  %d\n", len(merged.Rows))

	if len(merged.Rows) == 0 {
		// Valid result, distinct from a load failure: nothing overlapped.
		fmt.Println("no (date, city) keys overlap between the two files")
		return 0
	}

	printBucketDistribution(merged)

	if outPath != "" {
		if err := writeMergedCSV(outPath, merged); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: write merged CSV: %v\n", err)
			return 1
		}
		fmt.Printf("wrote %s\n", outPath)
	}
	return 0
}

func printBucketDistribution(merged domain.MergedTable) {
	counts := map[string]int{}
	for _, r := range merged.Rows {
		counts[r.TempBucket]++
	}
	fmt.Println("temperature buckets:")
	for _, bucket := range domain.BucketOrder() {
		fmt.Printf("  %-16s %d\n", bucket, counts[bucket])
	}
}

func writeMergedCSV(path string, merged domain.MergedTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"date_str", "city", "season", "team1", "team2", "venue",
		"total_runs", "temp_c", "humidity", "weather_type", "temp_bucket",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range merged.Rows {
		humidity := ""
		if r.Humidity != nil {
			humidity = strconv.FormatFloat(*r.Humidity, 'f', -1, 64)
		}
		row := []string{
			r.DateStr, r.City, r.Season, r.Team1, r.Team2, r.Venue,
			strconv.FormatFloat(r.TotalRuns, 'f', -1, 64),
			strconv.FormatFloat(r.TempC, 'f', -1, 64),
			humidity, r.WeatherType, r.TempBucket,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
