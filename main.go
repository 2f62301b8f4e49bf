// @title Calibration Quiz API
// @version 1.0
// @description Interval-estimate calibration quiz: sampling, scoring and score history.

// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"calibration_quiz/internal/cli"
	"os"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
