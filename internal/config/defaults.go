package config

import (
	"sort"

	"leadqual-engine/internal/domain"
)

func defaultServiceMapping() map[string]domain.ServiceClassification {
	return map[string]domain.ServiceClassification{
		"animation":          {DetailedService: "Animation", ServiceBucket: domain.BucketArt},
		"animator":           {DetailedService: "Animation", ServiceBucket: domain.BucketArt},
		"vfx":                {DetailedService: "VFX", ServiceBucket: domain.BucketArt},
		"technical artist":   {DetailedService: "Technical Art", ServiceBucket: domain.BucketArt},
		"technical animator": {DetailedService: "Technical Animation", ServiceBucket: domain.BucketArt},
		"engineer":           {DetailedService: "Programming", ServiceBucket: domain.BucketCoDev},
		"programmer":         {DetailedService: "Programming", ServiceBucket: domain.BucketCoDev},
		"engine programmer":  {DetailedService: "Programming", ServiceBucket: domain.BucketCoDev},
		"tools":              {DetailedService: "Programming Tools", ServiceBucket: domain.BucketCoDev},
		"producer":           {DetailedService: "Game Production", ServiceBucket: domain.BucketFull},
		"level designer":     {DetailedService: "Game Production", ServiceBucket: domain.BucketFull},
		"design":             {DetailedService: "Game Development", ServiceBucket: domain.BucketFull},
		"ui":                 {DetailedService: "UI/UX", ServiceBucket: domain.BucketArt},
		"ux":                 {DetailedService: "UI/UX", ServiceBucket: domain.BucketArt},
		"render":             {DetailedService: "Rendering", ServiceBucket: domain.BucketCoDev},
		"rig":                {DetailedService: "Rigging", ServiceBucket: domain.BucketArt},
	}
}

func defaultRegionMapping() map[string][]string {
	return map[string][]string{
		"united states": {"united states", "usa", "us"},
		"canada":        {"canada"},
		"france":        {"france"},
		"uk":            {"uk", "united kingdom", "great britain", "england"},
		"germany":       {"germany"},
		"japan":         {"japan"},
		"china":         {"china"},
		"finland":       {"finland"},
		"sweden":        {"sweden"},
		"poland":        {"poland"},
		"australia":     {"australia"},
		"singapore":     {"singapore"},
		"india":         {"india"},
	}
}

func defaultIndustryLists() IndustryLists {
	return IndustryLists{
		TrustedGameCompanies: []string{
			"ubisoft", "epic games", "riot games", "cd projekt red", "bethesda",
			"activision", "blizzard", "respawn", "naughty dog", "take-two",
			"square enix", "nintendo", "playstation", "scopely",
			"keywords studios", "gameloft", "supercell", "behaviour interactive",
			"dices", "insomniac", "rockstar", "ea", "sony", "konami", "remedy",
		},
		ForcedNonGaming: []string{
			"linkedin", "tcs", "infosys", "deloitte", "bosch", "walmart",
			"cognizant", "accenture", "capgemini", "hcl",
		},
	}
}

func defaultICPRules() ICPRules {
	regions := make([]string, 0)
	for region := range defaultRegionMapping() {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return ICPRules{
		GoodRegions: regions,
		Weights: Weights{
			Employees: 25,
			Revenue:   25,
			Region:    20,
			Service:   15,
			Industry:  15,
		},
		ScoreThreshold: 75,
	}
}
