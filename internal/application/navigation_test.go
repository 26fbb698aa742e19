package application

import (
	"net/url"
	"testing"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationLinks(t *testing.T) {
	t.Parallel()

	values := domain.EncodeQuery(corolla)
	values.Set("ref", "landing")

	testCases := []struct {
		name     string
		link     string
		wantPath string
		wantKeys map[string]string
	}{
		{
			name:     "repair mission",
			link:     MissionLink(values, domain.MissionRepair),
			wantPath: PathOperationalCategory,
			wantKeys: map[string]string{domain.FieldMission: "repair", "ref": "landing", domain.FieldBrand: "Toyota"},
		},
		{
			name:     "tune mission",
			link:     MissionLink(values, domain.MissionTune),
			wantPath: PathECUTuning,
			wantKeys: map[string]string{domain.FieldMission: "tune", domain.FieldModel: "Corolla"},
		},
		{
			name:     "critical category",
			link:     CategoryLink(values, CategoryCritical),
			wantPath: PathCriticalDiagnosis,
			wantKeys: map[string]string{domain.FieldPriority: "critical", domain.FieldYear: "2018"},
		},
		{
			name:     "sustenance category",
			link:     CategoryLink(values, CategorySustenance),
			wantPath: PathPartIdentification,
			wantKeys: map[string]string{domain.FieldMileage: "65000"},
		},
		{
			name:     "back from tuning",
			link:     BackLink(PathECUTuning, values),
			wantPath: PathMissionSelection,
			wantKeys: map[string]string{domain.FieldVehicleType: "car"},
		},
		{
			name:     "back from diagnosis",
			link:     BackLink(PathCriticalDiagnosis, values),
			wantPath: PathOperationalCategory,
			wantKeys: map[string]string{"ref": "landing"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := url.Parse(tc.link)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPath, parsed.Path)
			for key, want := range tc.wantKeys {
				assert.Equal(t, want, parsed.Query().Get(key), key)
			}
		})
	}
}

func TestFullAnalysisLinkAlwaysCarriesProblem(t *testing.T) {
	t.Parallel()

	vehicle := corolla
	vehicle.Problem = ""

	parsed, err := url.Parse(FullAnalysisLink(domain.EncodeQuery(vehicle)))
	require.NoError(t, err)

	decoded, err := domain.DecodeResultsQuery(parsed.Query())
	require.NoError(t, err)
	assert.Equal(t, "Corolla", decoded.Model)
}

func TestMissionLinkDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	values := url.Values{domain.FieldBrand: {"Honda"}}
	_ = MissionLink(values, domain.MissionRepair)

	assert.Empty(t, values.Get(domain.FieldMission))
}
