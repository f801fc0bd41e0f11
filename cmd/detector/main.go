package main

import (
	"context"
	"flag"

	"github.com/joejanuszk/CarND-Capstone/pkg"
	"github.com/joejanuszk/CarND-Capstone/pkg/classifier"
	"github.com/joejanuszk/CarND-Capstone/pkg/concurrent"
	"github.com/joejanuszk/CarND-Capstone/pkg/datastructure"
	"github.com/joejanuszk/CarND-Capstone/pkg/engine/detector"
	"github.com/joejanuszk/CarND-Capstone/pkg/http"
	"github.com/joejanuszk/CarND-Capstone/pkg/http/router/controllers"
	"github.com/joejanuszk/CarND-Capstone/pkg/http/usecases"
	"github.com/joejanuszk/CarND-Capstone/pkg/logger"
	"github.com/joejanuszk/CarND-Capstone/pkg/osmloader"
	"github.com/joejanuszk/CarND-Capstone/pkg/recorder"
	"github.com/joejanuszk/CarND-Capstone/pkg/spatialindex"
	"github.com/joejanuszk/CarND-Capstone/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useClassifier = flag.Bool("classifier", false, "classify light color from camera frames instead of trusting the ground-truth channel")
	recordFile    = flag.String("record", "", "append every input event to this bzip2 event log for offline replay")
	osmFile       = flag.String("osm", "", "seed traffic light and stop positions from this openstreetmap pbf extract")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	stopLines := datastructure.NewStopLines(stopLinePositions())

	var seededLights []datastructure.TrafficLight
	if *osmFile != "" {
		signals, stops, err := osmloader.NewLoader(log).Load(*osmFile)
		if err != nil {
			panic(err)
		}
		stopLines = spatialindex.MergeStopLines(stopLines, stops, pkg.STOP_LINE_MERGE_METERS, log)
		seededLights = make([]datastructure.TrafficLight, 0, len(signals))
		for _, p := range signals {
			seededLights = append(seededLights, datastructure.NewTrafficLight(p, pkg.UNKNOWN))
		}
	}
	if len(stopLines) == 0 {
		log.Warn("no stop line positions known; every frame resolves to no-stop")
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(stopLines, log)

	pool := concurrent.NewWorkerPool(15, 10)
	pool.Spawn(10)

	hub := controllers.NewHub(pool)

	var cl classifier.Classifier
	if *useClassifier {
		viper.SetDefault("CLASSIFIER_MIN_PIXELS", 50)
		cl = classifier.NewHSVClassifier(viper.GetInt("CLASSIFIER_MIN_PIXELS"), log)
		log.Info("camera classifier enabled; ground-truth colors are ignored")
	}

	var rec *recorder.Recorder
	if *recordFile != "" {
		rec, err = recorder.NewRecorder(*recordFile)
		if err != nil {
			panic(err)
		}
		log.Info("recording input events", zap.String("file", *recordFile))
	}

	eng := detector.NewDetector(stopLines, cl, hub.Broadcast, log)

	if len(seededLights) > 0 {
		eng.OnTrafficLights(seededLights)
	}

	detectorService := usecases.NewDetectorService(log, eng, rtree, stopLines, rec)

	api := http.NewServer(log)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx,
		log, viper.GetBool("USE_RATE_LIMIT"), detectorService, hub, pool)

	signal := http.GracefulShutdown()

	log.Info("Traffic light detector stopped", zap.String("signal", signal.String()))
	cleanup()
	if rec != nil {
		if err := rec.Close(); err != nil {
			log.Warn("could not close event log", zap.Error(err))
		}
	}
}

// stopLinePositions reads the configured (x, y) pairs; viper yields yaml
// nested lists as []interface{}.
func stopLinePositions() [][]float64 {
	raw, ok := viper.Get("stop_line_positions").([]interface{})
	if !ok {
		return nil
	}

	coords := make([][]float64, 0, len(raw))
	for _, item := range raw {
		pair, ok := item.([]interface{})
		if !ok || len(pair) < 2 {
			continue
		}
		coords = append(coords, []float64{toFloat(pair[0]), toFloat(pair[1])})
	}
	return coords
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
