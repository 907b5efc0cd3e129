// Command genmock writes deterministic sample match and weather CSV
// fixtures. Dates rotate through the supported input formats, temperatures
// span all four buckets, and a couple of rows carry deliberately
// unparseable dates to exercise the drop path.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -match-out data/ipl_matches_sample.csv \
//	  -weather-out data/weather_sample.csv \
//	  -days 14
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"
)

var baseDate = time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)

var cities = []string{"Mumbai", "Chennai", "Delhi", "Kolkata"}

var venues = map[string]string{
	"Mumbai":  "Wankhede Stadium",
	"Chennai": "MA Chidambaram Stadium",
	"Delhi":   "Arun Jaitley Stadium",
	"Kolkata": "Eden Gardens",
}

var teams = []string{
	"Mumbai Indians", "Chennai Super Kings", "Delhi Capitals",
	"Kolkata Knight Riders", "Royal Challengers Bangalore", "Punjab Kings",
}

var weatherTypes = []string{"Sunny", "Cloudy", "Humid", "Clear"}

// dateFormats rotates heterogeneous renderings of the same calendar dates
// so the fixtures exercise the date normalizer, ordinal suffixes included.
var dateFormats = []func(t time.Time) string{
	func(t time.Time) string { return t.Format("2006-01-02") },
	func(t time.Time) string { return t.Format("02/01/2006") },
	func(t time.Time) string { return ordinal(t.Day()) + t.Format(" January 2006") },
	func(t time.Time) string { return t.Format("2 Jan 2006") },
}

func main() {
	matchOut := flag.String("match-out", "data/ipl_matches_sample.csv", "output path for the match fixture")
	weatherOut := flag.String("weather-out", "data/weather_sample.csv", "output path for the weather fixture")
	days := flag.Int("days", 14, "number of consecutive days to generate")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := writeMatches(*matchOut, *days, rng); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote match fixture: %s", *matchOut)

	if err := writeWeather(*weatherOut, *days, rng); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote weather fixture: %s", *weatherOut)
}

func writeMatches(path string, days int, rng *rand.Rand) error {
	rows := [][]string{{"Date", "City", "Season", "Team1", "Team2", "Venue", "Total_Runs"}}

	for d := 0; d < days; d++ {
		date := baseDate.AddDate(0, 0, d)
		city := cities[d%len(cities)]
		t1 := teams[rng.Intn(len(teams))]
		t2 := teams[rng.Intn(len(teams))]
		for t2 == t1 {
			t2 = teams[rng.Intn(len(teams))]
		}
		runs := 250 + rng.Intn(200)

		rows = append(rows, []string{
			dateFormats[d%len(dateFormats)](date),
			city,
			"2021",
			t1,
			t2,
			venues[city],
			strconv.Itoa(runs),
		})
	}

	// One row the normalizer must drop.
	rows = append(rows, []string{"not-a-date", "Mumbai", "2021",
		teams[0], teams[1], venues["Mumbai"], "301"})

	return writeCSV(path, rows)
}

func writeWeather(path string, days int, rng *rand.Rand) error {
	rows := [][]string{{"Date", "City", "Temp_C", "Humidity", "Weather_Type"}}

	for d := 0; d < days; d++ {
		date := baseDate.AddDate(0, 0, d)
		for i, city := range cities {
			// Sweep 22..39 so every bucket appears in the fixture.
			temp := 22.0 + float64((d*len(cities)+i)%18) + rng.Float64()
			humidity := 40 + rng.Intn(50)

			rows = append(rows, []string{
				dateFormats[(d+i)%len(dateFormats)](date),
				city,
				strconv.FormatFloat(temp, 'f', 1, 64),
				strconv.Itoa(humidity),
				weatherTypes[rng.Intn(len(weatherTypes))],
			})
		}
	}

	rows = append(rows, []string{"", "Delhi", "31.0", "55", "Sunny"})

	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func ordinal(day int) string {
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
