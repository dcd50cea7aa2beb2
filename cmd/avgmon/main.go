package main

import (
	"context"
	"flag"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"io"
	"math"
	"math/rand"
	"movingavg/core"
	"net/http"
	"os"
	"os/signal"
	"time"
)

var windowSize = flag.Int("window", 8, "rolling window size in samples")
var alpha = flag.Float64("alpha", 0.2, "EMA smoothing factor")
var threshold = flag.Int("threshold", 800, "peak detection threshold")
var matches = flag.Int("matches", 3, "consecutive samples at or above threshold for a peak")
var interval = flag.Duration("interval", 250*time.Millisecond, "sampling interval")
var metricsAddr = flag.String("metrics-addr", ":9090", "prometheus listen address")
var quiet = flag.Bool("quiet", false, "suppress per-sample print lines")

var rawGauge = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "avgmon",
	Name:      "raw_sample",
	Help:      "Latest raw sample fed to the engine.",
})

var statGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "avgmon",
	Name:      "statistic",
	Help:      "Latest value of each rolling statistic.",
}, []string{"stat"})

var samplesTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "avgmon",
	Name:      "samples_total",
	Help:      "Samples recorded since startup.",
})

var peaksTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "avgmon",
	Name:      "peaks_total",
	Help:      "Peaks detected since startup.",
})

// nextSample synthesizes a slow sine swinging over most of a 10-bit ADC
// range plus uniform noise, so the crest crosses the default threshold for
// a few consecutive ticks per period.
func nextSample(tick int) int16 {
	base := 512 + 300*math.Sin(2*math.Pi*float64(tick)/120)
	noise := float64(rand.Intn(64) - 32)
	return int16(base + noise)
}

func main() {
	// parse flags, seed the level source once for the whole process
	flag.Parse()
	rand.Seed(time.Now().UnixNano())

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *windowSize < 1 {
		logger.Fatal("window size must be at least 1", zap.Int("window", *windowSize))
	}

	// run the prometheus endpoint
	prometheus.MustRegister(rawGauge, statGauge, samplesTotal, peaksTotal)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		panic(http.ListenAndServe(*metricsAddr, nil))
	}()

	engine := core.NewEngine[int16, float64]()
	if *quiet {
		engine.SetOutput(io.Discard)
	}
	engine.Begin()

	read := func(value float64, err error) float64 {
		if err != nil {
			logger.Fatal("statistic read failed", zap.Error(err))
		}
		return value
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sampling",
		zap.Int("window", *windowSize),
		zap.Float64("alpha", *alpha),
		zap.Int("threshold", *threshold),
		zap.Duration("interval", *interval),
		zap.String("metrics", *metricsAddr))

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	count := int64(0)
loop:
	for tick := 0; ; tick++ {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}

		sample := nextSample(tick)
		engine.Add(sample)
		count++
		samplesTotal.Inc()
		rawGauge.Set(float64(sample))

		statGauge.WithLabelValues(core.SMA.String()).Set(read(engine.ReadAverage(*windowSize)))
		statGauge.WithLabelValues(core.CA.String()).Set(read(engine.ReadCumulativeAverage()))
		statGauge.WithLabelValues(core.WMA.String()).Set(read(engine.ReadWeightedAverage(*windowSize)))
		statGauge.WithLabelValues(core.EMA.String()).Set(read(engine.ReadExponentialAverage(*alpha)))
		statGauge.WithLabelValues(core.MM.String()).Set(read(engine.ReadMovingMedian(*windowSize)))

		if engine.DetectedPeak(int16(*threshold), *matches) {
			peaksTotal.Inc()
			logger.Info("peak detected",
				zap.Int16("sample", sample),
				zap.Int("threshold", *threshold),
				zap.Int("matches", *matches))
		}

		if err := engine.Print(); err != nil {
			logger.Fatal("print failed", zap.Error(err))
		}
	}

	logger.Info("shutting down",
		zap.String("samples", humanize.Comma(count)))
}
