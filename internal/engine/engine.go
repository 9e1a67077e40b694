package engine

import (
	"context"
	"log/slog"

	"leadqual-engine/internal/cachestore"
	"leadqual-engine/internal/classify"
	"leadqual-engine/internal/config"
	"leadqual-engine/internal/domain"
	"leadqual-engine/internal/enrich"
	"leadqual-engine/internal/score"
)

// Engine evaluates one job record against the ICP: gate, service
// classification, company enrichment, industry detection, decision.
type Engine struct {
	gate      *classify.GameRoleGate
	services  *classify.ServiceClassifier
	industry  *classify.IndustryDetector
	companies *enrich.CompanyEnricher
	icp       config.ICPRules
	log       *slog.Logger
}

func New(rules *config.RuleTables, caches *cachestore.Store, completer classify.Completer, log *slog.Logger) *Engine {
	return &Engine{
		gate:      classify.NewGameRoleGate(),
		services:  classify.NewServiceClassifier(rules.ServiceMapping, caches.Classify, completer, log),
		industry:  classify.NewIndustryDetector(rules.Industry, caches.Industry, completer, log),
		companies: enrich.NewCompanyEnricher(caches.Trusted, caches.Company, completer, log),
		icp:       rules.ICP,
		log:       log,
	}
}

// Evaluate runs the full pipeline for one record. Non-game titles
// short-circuit: no enrichment, no oracle, score zero.
func (e *Engine) Evaluate(ctx context.Context, rec domain.JobRecord) domain.QualificationResult {
	if !e.gate.IsGameRole(rec.Title) {
		return domain.QualificationResult{
			Company:         rec.Company,
			Title:           rec.Title,
			DetailedService: "Non-Game Role",
			ServiceBucket:   domain.BucketNone,
			HQ:              domain.Unknown,
			Employees:       domain.Unknown,
			Revenue:         domain.Unknown,
			IndustryMatch:   false,
			Decision:        domain.NotQualified,
			Reason:          "Role not related to game development.",
			Confidence:      "100%",
			Score:           0,
			URL:             rec.URL,
			SourceIndex:     rec.Index,
		}
	}

	svc, svcSrc := e.services.Classify(ctx, rec.Title)
	profile, profSrc := e.companies.Profile(ctx, rec.Company)
	industry, indSrc := e.industry.Detect(ctx, rec.Company, rec.Title)

	e.log.Debug("row resolved",
		"company", rec.Company,
		"service_source", svcSrc,
		"profile_source", profSrc,
		"industry_source", indSrc)

	dec := score.Decide(rec.Company, svc.ServiceBucket,
		profile.HQCountry, profile.Employees, profile.Revenue, industry, e.icp)

	return domain.QualificationResult{
		Company:         rec.Company,
		Title:           rec.Title,
		DetailedService: svc.DetailedService,
		ServiceBucket:   svc.ServiceBucket,
		HQ:              profile.HQCountry,
		Employees:       profile.Employees,
		Revenue:         profile.Revenue,
		IndustryMatch:   industry,
		Decision:        dec.Decision,
		Reason:          dec.Reason,
		Confidence:      dec.Confidence,
		Score:           dec.Score,
		URL:             rec.URL,
		SourceIndex:     rec.Index,
	}
}

// EvaluateOne is the single-lead entry point used by the score command;
// it runs the same pipeline without touching checkpoint or dedupe state.
func (e *Engine) EvaluateOne(ctx context.Context, company, title string) domain.QualificationResult {
	return e.Evaluate(ctx, domain.JobRecord{Company: company, Title: title, Index: -1})
}
