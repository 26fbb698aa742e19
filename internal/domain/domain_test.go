package domain

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationValidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	valid := Registration{VehicleType: VehicleTypeCar, Brand: "Toyota", Model: "Corolla", Year: 2018, Mileage: 65000}

	tests := []struct {
		name      string
		mutate    func(r *Registration)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*Registration) {}},
		{name: "year 1899 rejected", mutate: func(r *Registration) { r.Year = 1899 }, wantField: FieldYear, wantMsg: "Year must be after 1900."},
		{name: "year 1900 accepted", mutate: func(r *Registration) { r.Year = 1900 }},
		{name: "next year accepted", mutate: func(r *Registration) { r.Year = 2027 }},
		{name: "two years ahead rejected", mutate: func(r *Registration) { r.Year = 2028 }, wantField: FieldYear, wantMsg: "Year cannot be in the future."},
		{name: "negative mileage rejected", mutate: func(r *Registration) { r.Mileage = -1 }, wantField: FieldMileage, wantMsg: "Mileage must be a positive number."},
		{name: "zero mileage accepted", mutate: func(r *Registration) { r.Mileage = 0 }},
		{name: "short brand", mutate: func(r *Registration) { r.Brand = "T" }, wantField: FieldBrand, wantMsg: "Brand must be at least 2 characters."},
		{name: "empty model", mutate: func(r *Registration) { r.Model = "" }, wantField: FieldModel, wantMsg: "Model is required."},
		{name: "unknown type", mutate: func(r *Registration) { r.VehicleType = "truck" }, wantField: FieldVehicleType, wantMsg: "You need to select a vehicle type."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := valid
			tt.mutate(&reg)

			err := reg.Validate(now)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.wantMsg, verrs[tt.wantField])
			assert.Len(t, verrs, 1)
		})
	}
}

func TestParseRegistrationRejectsNonNumeric(t *testing.T) {
	reg, errs := ParseRegistration("bike", "Honda", "CBR", "abc", "")

	assert.Equal(t, VehicleTypeBike, reg.VehicleType)
	assert.Equal(t, "Year must be after 1900.", errs[FieldYear])
	assert.Equal(t, "Mileage must be a positive number.", errs[FieldMileage])
}

func TestRegistrationDescriptorEncodesDecimalStrings(t *testing.T) {
	reg := Registration{VehicleType: VehicleTypeCar, Brand: "Toyota", Model: "Corolla", Year: 2018, Mileage: 65000}

	values := EncodeQuery(reg.Descriptor())

	assert.Equal(t, "vehicleType=car&brand=Toyota&model=Corolla&year=2018&mileage=65000", orderedQuery(values))
	_, hasProblem := values[FieldProblem]
	assert.False(t, hasProblem)
}

func TestDecodeResultsQueryRequiresProblemKey(t *testing.T) {
	values := url.Values{}
	values.Set(FieldVehicleType, "car")
	values.Set(FieldBrand, "Toyota")
	values.Set(FieldModel, "Corolla")
	values.Set(FieldYear, "2018")
	values.Set(FieldMileage, "65000")

	_, err := DecodeResultsQuery(values)
	require.Error(t, err)
	assert.True(t, IsMissingVehicleInfo(err))

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{FieldProblem}, missing.Fields)

	values.Set(FieldProblem, "")
	got, err := DecodeResultsQuery(values)
	require.NoError(t, err)
	assert.Equal(t, "Corolla", got.Model)
	assert.Empty(t, got.Problem)
}

func TestDecodeResultsQueryMissingVehicleKey(t *testing.T) {
	values := url.Values{FieldVehicleType: {"car"}, FieldBrand: {"Toyota"}, FieldModel: {"Corolla"}, FieldYear: {"2018"}, FieldProblem: {""}}

	_, err := DecodeResultsQuery(values)

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{FieldMileage}, missing.Fields)
}

func TestDecodeVehicleQueryRejectsEmptyValues(t *testing.T) {
	values := url.Values{FieldVehicleType: {"car"}, FieldBrand: {""}, FieldModel: {"Corolla"}, FieldYear: {"2018"}, FieldMileage: {"1"}}

	_, err := DecodeVehicleQuery(values)

	assert.ErrorIs(t, err, ErrMissingVehicleInfo)
}

func TestWithParamPreservesUnknownKeysAndInput(t *testing.T) {
	values := url.Values{FieldBrand: {"Toyota"}, "utm": {"x"}}

	next := WithParam(values, FieldMission, string(MissionRepair))

	assert.Equal(t, "x", next.Get("utm"))
	assert.Equal(t, "repair", next.Get(FieldMission))
	assert.Empty(t, values.Get(FieldMission))
}

func TestRoadmapIssues(t *testing.T) {
	tests := []struct {
		name     string
		detected []string
		problem  string
		want     string
	}{
		{name: "issues and problem", detected: []string{"worn brake pads", "low coolant"}, problem: "squeal", want: "worn brake pads, low coolant, squeal"},
		{name: "issues only", detected: []string{"worn brake pads"}, want: "worn brake pads"},
		{name: "problem only", problem: "rattle", want: "rattle"},
		{name: "nothing", want: "No major issues detected."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoadmapIssues(tt.detected, tt.problem))
		})
	}
}

func TestTranscriptAppendDoesNotAlias(t *testing.T) {
	base := Transcript{}.Append(ChatMessage{Role: RoleUser, Content: "hi"})

	a := base.Append(ChatMessage{Role: RoleAssistant, Content: "a"})
	b := base.Append(ChatMessage{Role: RoleAssistant, Content: "b"})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, "a", a.History()[1].Content)
	assert.Equal(t, "b", b.History()[1].Content)

	history := a.History()
	history[0].Content = "mutated"
	assert.Equal(t, "hi", a.History()[0].Content)
}

func TestFormatDiagnosisReply(t *testing.T) {
	reply := FormatDiagnosisReply([]ProbableCause{
		{Failure: "brake_pad_wear", Causes: []string{"Thin pads", "Scored rotor"}, Confidence: 0.873},
		{Failure: "ignored", Confidence: 0.1},
	})

	assert.Equal(t, "Possible issue detected: brake pad wear\n\nLikely causes:\n• Thin pads\n• Scored rotor\n\nConfidence: 87.3%", reply)
	assert.Equal(t, "No clear diagnosis could be determined from the description.", FormatDiagnosisReply(nil))
}

func TestDefaultConfigUsesMidpoints(t *testing.T) {
	schema := EcuSchema{
		TunableParams: []string{"fuel_air_ratio", "boost_pressure", "throttle_response_rate", "ignition_timing_advance"},
		Bounds: map[string]Bounds{
			"fuel_air_ratio":          {12, 15},
			"boost_pressure":          {0, 25},
			"throttle_response_rate":  {0, 1.5},
			"ignition_timing_advance": {0, 0.25},
		},
		StepSizes: map[string]float64{
			"fuel_air_ratio":          0.1,
			"boost_pressure":          1,
			"throttle_response_rate":  0.5,
			"ignition_timing_advance": 0.01,
		},
	}
	require.NoError(t, schema.Validate())

	config := DefaultConfig(schema)

	assert.InDelta(t, 13.5, config["fuel_air_ratio"], 1e-9)
	assert.InDelta(t, 12.5, config["boost_pressure"], 1e-9)
	assert.InDelta(t, 0.75, config["throttle_response_rate"], 1e-9)
	assert.InDelta(t, 0.13, config["ignition_timing_advance"], 1e-9)
}

func TestEcuSchemaValidateRejectsInvertedBounds(t *testing.T) {
	schema := EcuSchema{TunableParams: []string{"x"}, Bounds: map[string]Bounds{"x": {5, 1}}}

	assert.Error(t, schema.Validate())
}

func TestMergeConfigDropsBlankState(t *testing.T) {
	merged, err := MergeConfig(
		map[string]string{StateEngineRPM: "2500", StateEngineLoad: "  ", StateIntakeTemp: ""},
		EcuConfig{"fuel_air_ratio": 13.5},
	)
	require.NoError(t, err)

	assert.Equal(t, EcuConfig{StateEngineRPM: 2500, "fuel_air_ratio": 13.5}, merged)

	_, err = MergeConfig(map[string]string{StateEngineRPM: "fast"}, nil)
	assert.Error(t, err)
}

func TestRecommendationDerivedValues(t *testing.T) {
	rec := Recommendation{
		CurrentScore: -50,
		BestScore:    -40,
		NewConfig:    EcuConfig{"fuel_air_ratio": 13.1, "boost_pressure": 14},
		Deltas:       EcuConfig{"fuel_air_ratio": -0.4, "boost_pressure": 2, "unused_knob": 0},
	}

	assert.InDelta(t, 20.0, rec.Improvement(), 1e-9)

	changes := rec.ParamChanges()
	require.Len(t, changes, 2)
	assert.Equal(t, "Boost Pressure (psi)", changes[0].Label)
	assert.Equal(t, "↑", changes[0].Arrow())
	assert.InDelta(t, 2.0, changes[0].Magnitude, 1e-9)
	assert.InDelta(t, 12.0, changes[0].Original, 1e-9)
	assert.InDelta(t, 14.0, changes[0].Recommended, 1e-9)
	assert.Equal(t, "↓", changes[1].Arrow())
	assert.InDelta(t, 0.4, changes[1].Magnitude, 1e-9)
}

func TestParamLabel(t *testing.T) {
	assert.Equal(t, "Ignition Timing Advance (°)", ParamLabel("ignition_timing_advance"))
	assert.Equal(t, "IDLE SPEED", ParamLabel("idle_speed"))
}

func TestAuthSession(t *testing.T) {
	assert.False(t, AuthSession{}.IsAuthenticated())
	assert.False(t, AuthSession{Token: "   "}.IsAuthenticated())

	session := AuthSession{Token: "t", User: &User{ID: 1, Email: "a@b.c"}}
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "a@b.c", session.DisplayName())
}

func orderedQuery(values url.Values) string {
	keys := []string{FieldVehicleType, FieldBrand, FieldModel, FieldYear, FieldMileage, FieldProblem}
	out := ""
	for _, key := range keys {
		if _, ok := values[key]; !ok {
			continue
		}
		if out != "" {
			out += "&"
		}
		out += key + "=" + values.Get(key)
	}

	return out
}

func TestHealthScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		issues int
		want   int
	}{
		{issues: 0, want: 100},
		{issues: 2, want: 70},
		{issues: 7, want: 0},
	}

	for _, tc := range testCases {
		result := AnalysisResult{DetectedIssues: make([]string, tc.issues)}
		assert.Equal(t, tc.want, result.HealthScore(), "issues=%d", tc.issues)
	}
}
