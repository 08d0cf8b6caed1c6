package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"asdscreen/internal/dataset"
	"asdscreen/internal/forest"
	"asdscreen/internal/trainer"
)

// Offline retraining tool. Loads the curated CSV, fits a fresh forest and
// writes the artifact, ignoring any cached model. Run after the curated
// dataset changes.
func main() {
	dataPath := flag.String("data", envOr("DATA_PATH", "datasets/toddler_autism_jul2018.csv"), "path to the curated training CSV")
	modelPath := flag.String("model", envOr("MODEL_PATH", "models/asd_forest.json"), "path to write the trained model artifact")
	flag.Parse()

	ds, err := dataset.Load(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("Dataset loaded: %d rows, %d defaulted cells", ds.Len(), ds.Defaulted)

	// Remove any existing artifact so Classifier retrains unconditionally.
	if err := os.Remove(*modelPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing model: %v", err)
	}

	f, err := trainer.New(*modelPath, forest.DefaultConfig()).Classifier(ds)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	fmt.Printf("Trained %d trees (depth %d, seed %d) on %d rows\n",
		f.Config.Trees, f.Config.MaxDepth, f.Config.Seed, ds.Len())
	fmt.Printf("Model written to %s\n", *modelPath)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
