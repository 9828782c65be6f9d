package common

import (
	"fmt"
	"log"
	"math"

	"gridironMetrics/models"

	"gorm.io/gorm"
)

// LogError writes the failure to stdout and, when a DB handle is available,
// to the error_logs table so batch failures survive a restart.
func LogError(db *gorm.DB, scope string, err error) {
	log.Printf("%s: %v", scope, err)

	if db == nil {
		return
	}
	errLog := models.ErrorLog{
		Scope:   scope,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

func Contains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}

func Round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
