// Command gen-orders writes a sample transaction CSV for demos and manual
// pipeline runs.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"
)

var (
	products = []string{"bread", "cheese", "wine", "milk", "butter", "apples"}
	channels = []string{"App", "Store", "Web"}
	payments = []string{"Visa", "Cash", "Mastercard"}
)

func main() {
	var (
		out   string
		count int
		seed  int64
	)

	flag.StringVar(&out, "out", "data/orders.csv", "output CSV path")
	flag.IntVar(&count, "count", 100, "number of orders to generate")
	flag.Int64Var(&seed, "seed", 1, "random seed")
	flag.Parse()

	if err := run(out, count, seed); err != nil {
		slog.Error("generate orders failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("orders generated", slog.String("path", out), slog.Int("count", count))
}

func run(out string, count int, seed int64) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	rng := rand.New(rand.NewSource(seed))

	fmt.Fprintln(w, "timestamp,product_name,expiry_date,quantity,unit_price,channel,payment_method")

	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for range count {
		placed := base.AddDate(0, 0, rng.Intn(365))
		// Expiry between 10 days before and 80 days after the order date,
		// so the proximity rule fires on a realistic share of rows.
		expiry := placed.AddDate(0, 0, rng.Intn(91)-10)

		fmt.Fprintf(w, "%sT%02d:%02d:00,%s,%s,%d,%d.%02d,%s,%s\n",
			placed.Format("2006-01-02"), rng.Intn(24), rng.Intn(60),
			products[rng.Intn(len(products))],
			expiry.Format("2006-01-02"),
			1+rng.Intn(20),
			1+rng.Intn(30), rng.Intn(100),
			channels[rng.Intn(len(channels))],
			payments[rng.Intn(len(payments))],
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", out, err)
	}

	return nil
}
