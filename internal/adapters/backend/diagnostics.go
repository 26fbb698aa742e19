package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
)

const DefaultTopK = 3

// Diagnostics is the client for the diagnostics backend: probable causes,
// parts search, part identification and ECU tuning.
type Diagnostics struct {
	Client
}

var (
	_ ports.Diagnostics    = (*Diagnostics)(nil)
	_ ports.PartsCatalog   = (*Diagnostics)(nil)
	_ ports.PartIdentifier = (*Diagnostics)(nil)
	_ ports.ECUTuner       = (*Diagnostics)(nil)
)

func NewDiagnostics(client Client) *Diagnostics {
	return &Diagnostics{Client: client}
}

type probableCauseResponse struct {
	Results []domain.ProbableCause `json:"results"`
}

func (d *Diagnostics) ProbableCause(ctx context.Context, vehicleType, query string, topK int) ([]domain.ProbableCause, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	values := url.Values{}
	values.Set("vehicle_type", strings.ToLower(vehicleType))
	values.Set("query", query)
	values.Set("topk", strconv.Itoa(topK))

	var payload probableCauseResponse
	err := d.do(ctx, request{
		method:   http.MethodGet,
		path:     "/diagnostics/probable-cause",
		query:    values,
		header:   http.Header{"Cache-Control": {"no-store"}},
		fallback: fixedFallback("Diagnostics API failed"),
	}, &payload)
	if err != nil {
		return nil, err
	}

	return payload.Results, nil
}

func (d *Diagnostics) FindParts(ctx context.Context, query domain.PartsQuery) (domain.PartsResult, error) {
	if query.Parts == nil {
		query.Parts = []string{}
	}

	var result domain.PartsResult
	err := d.do(ctx, request{
		method:   http.MethodPost,
		path:     "/parts/find-parts",
		json:     query,
		fallback: fixedFallback("Failed to fetch parts"),
	}, &result)
	if err != nil {
		return domain.PartsResult{}, err
	}
	if result.Parts == nil {
		result.Parts = []domain.Part{}
	}

	return result, nil
}

func (d *Diagnostics) IdentifyPart(ctx context.Context, vehicleType, filename, contentType string, image io.Reader) (domain.PartIdentification, error) {
	if image == nil {
		return domain.PartIdentification{}, errors.New("identify part: image is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	partHeader.Set("Content-Type", contentType)
	part, err := form.CreatePart(partHeader)
	if err != nil {
		return domain.PartIdentification{}, fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return domain.PartIdentification{}, fmt.Errorf("copy image: %w", err)
	}
	if err := form.WriteField("vehicle_type", vehicleType); err != nil {
		return domain.PartIdentification{}, fmt.Errorf("write vehicle type: %w", err)
	}
	if err := form.Close(); err != nil {
		return domain.PartIdentification{}, fmt.Errorf("close multipart form: %w", err)
	}

	values := url.Values{}
	values.Set("vehicle_type", vehicleType)

	var result domain.PartIdentification
	err = d.do(ctx, request{
		method: http.MethodPost,
		path:   "/parts/identify-part",
		query:  values,
		body:   &body,
		header: http.Header{"Content-Type": {form.FormDataContentType()}},
		fallback: func(resp *http.Response, raw []byte) string {
			return fmt.Sprintf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		},
	}, &result)
	if err != nil {
		return domain.PartIdentification{}, err
	}

	return result, nil
}

func (d *Diagnostics) Schema(ctx context.Context) (domain.EcuSchema, error) {
	var schema domain.EcuSchema
	err := d.do(ctx, request{
		method: http.MethodGet,
		path:   "/ecu/schema",
		fallback: func(resp *http.Response, _ []byte) string {
			return "API Error: " + http.StatusText(resp.StatusCode)
		},
	}, &schema)
	if err != nil {
		return domain.EcuSchema{}, err
	}

	return schema, nil
}

type recommendRequest struct {
	Config domain.EcuConfig `json:"config"`
	Goal   domain.Goal      `json:"goal"`
}

func (d *Diagnostics) Recommend(ctx context.Context, config domain.EcuConfig, goal domain.Goal) (domain.Recommendation, error) {
	if config == nil {
		config = domain.EcuConfig{}
	}

	var rec domain.Recommendation
	err := d.do(ctx, request{
		method:   http.MethodPost,
		path:     "/ecu/recommend",
		json:     recommendRequest{Config: config, Goal: goal},
		fallback: fixedFallback("Optimization request failed."),
	}, &rec)
	if err != nil {
		return domain.Recommendation{}, err
	}

	return rec, nil
}

func fixedFallback(message string) func(*http.Response, []byte) string {
	return func(*http.Response, []byte) string {
		return message
	}
}
