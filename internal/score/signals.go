package score

import (
	"math"
	"strings"

	"leadqual-engine/internal/config"
	"leadqual-engine/internal/domain"
)

// Per-signal scores: 0, a partial 60, or a full 100 per tier.

func Employees(empRange string) int {
	switch empRange {
	case "50-500", "500-5000":
		return 60
	case "5000-20000", ">20000":
		return 100
	}
	return 0
}

func Revenue(revRange string) int {
	switch revRange {
	case "50M-500M":
		return 60
	case "500M-1B", ">1B":
		return 100
	}
	return 0
}

func Region(hqCountry string, goodRegions []string) int {
	if regionMatches(hqCountry, goodRegions) {
		return 100
	}
	return 0
}

func Service(bucket string) int {
	switch bucket {
	case domain.BucketArt, domain.BucketCoDev, domain.BucketFull:
		return 100
	}
	return 0
}

func Industry(match bool) int {
	if match {
		return 100
	}
	return 0
}

// Weighted combines the five signals into the 0-100 composite, rounded
// to two decimals.
func Weighted(bucket, hq, employees, revenue string, industry bool, goodRegions []string, w config.Weights) float64 {
	total := float64(Employees(employees))*w.Employees +
		float64(Revenue(revenue))*w.Revenue +
		float64(Region(hq, goodRegions))*w.Region +
		float64(Service(bucket))*w.Service +
		float64(Industry(industry))*w.Industry
	return math.Round(total) / 100
}

// regionMatches: good regions are already lowercased; HQ matches by
// substring so "United States of America" still hits "united states".
func regionMatches(hqCountry string, goodRegions []string) bool {
	if hqCountry == "" {
		return false
	}
	lower := strings.ToLower(hqCountry)
	for _, r := range goodRegions {
		if r != "" && strings.Contains(lower, r) {
			return true
		}
	}
	return false
}
