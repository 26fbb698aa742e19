package application

import (
	"net/url"

	"github.com/bnema/motorsense/internal/domain"
)

// Page paths. The query string is the only state carried between them.
const (
	PathHome                = "/"
	PathLogin               = "/login"
	PathSignUp              = "/signup"
	PathAnalyze             = "/analyze"
	PathMissionSelection    = "/mission-selection"
	PathOperationalCategory = "/operational-category"
	PathResults             = "/results"
	PathCriticalDiagnosis   = "/critical-diagnosis"
	PathPartIdentification  = "/part-identification"
	PathECUTuning           = "/ecu-tuning"
)

type Category string

const (
	CategorySustenance Category = "sustenance"
	CategoryCritical   Category = "critical"
)

func link(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}

	return path + "?" + values.Encode()
}

func MissionSelectionPath(values url.Values) string {
	return link(PathMissionSelection, values)
}

// MissionLink is where a mission card leads. Every incoming parameter is kept.
func MissionLink(values url.Values, mission domain.Mission) string {
	next := domain.WithParam(values, domain.FieldMission, string(mission))
	if mission == domain.MissionTune {
		return link(PathECUTuning, next)
	}

	return link(PathOperationalCategory, next)
}

func CategoryLink(values url.Values, category Category) string {
	if category == CategoryCritical {
		return link(PathCriticalDiagnosis, domain.WithParam(values, domain.FieldPriority, string(domain.PriorityCritical)))
	}

	return link(PathPartIdentification, values)
}

// FullAnalysisLink opens the results page. The problem key is always present
// there, even when empty.
func FullAnalysisLink(values url.Values) string {
	return link(PathResults, domain.WithParam(values, domain.FieldProblem, values.Get(domain.FieldProblem)))
}

// BackLink returns the page one level up from path.
func BackLink(path string, values url.Values) string {
	switch path {
	case PathOperationalCategory, PathECUTuning:
		return link(PathMissionSelection, values)
	case PathCriticalDiagnosis, PathPartIdentification:
		return link(PathOperationalCategory, values)
	case PathMissionSelection, PathResults:
		return PathAnalyze
	default:
		return PathHome
	}
}

func StartOverLink() string {
	return PathAnalyze
}
