package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/motorsense/internal/adapters/llm"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

var partSchema = llm.Object(
	[]string{"name", "platform", "price", "rating"},
	map[string]*llm.Schema{
		"name":     llm.String("The name of the part."),
		"platform": llm.String("The platform where the part can be found."),
		"price":    llm.Number("The price of the part."),
		"rating":   llm.Number("The rating of the part."),
	},
)

var (
	visionSchema = llm.Object([]string{"detectedIssues"}, map[string]*llm.Schema{
		"detectedIssues": llm.ArrayOf(llm.String(""), "A list of detected issues based on the vehicle information."),
	})

	partsSchema = llm.Object([]string{"parts"}, map[string]*llm.Schema{
		"parts": llm.ArrayOf(partSchema, ""),
	})

	roadmapSchema = llm.Object([]string{"roadmap"}, map[string]*llm.Schema{
		"roadmap": llm.String("A step-by-step maintenance or upgrade roadmap."),
	})

	findPartsParams = llm.Object([]string{"vehicleBrand", "vehicleModel", "vehicleYear", "parts"}, map[string]*llm.Schema{
		"vehicleBrand": llm.String("The brand of the vehicle."),
		"vehicleModel": llm.String("The model of the vehicle."),
		"vehicleYear":  llm.String("The year of the vehicle."),
		"parts":        llm.ArrayOf(llm.String(""), "The parts to search for."),
	})
)

// OutputError is model output that does not match the flow schema.
type OutputError struct {
	Path   string
	Reason string
}

func (e *OutputError) Error() string {
	if e.Path == "" {
		return "model output " + e.Reason
	}
	return fmt.Sprintf("model output %s: %s", e.Path, e.Reason)
}

// decodeOutput strips markdown fences, checks the JSON against schema and
// decodes it into out.
func decodeOutput(text string, schema *llm.Schema, out any) error {
	raw := stripFences(text)
	if raw == "" {
		return &OutputError{Reason: "is empty"}
	}

	value, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return &OutputError{Reason: "is not valid JSON: " + err.Error()}
	}
	if err := validate(schema, value); err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &OutputError{Reason: "does not decode: " + err.Error()}
	}
	return nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if newline := strings.IndexByte(text, '\n'); newline >= 0 {
		text = text[newline+1:]
	} else {
		text = ""
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// compiled caches one compiled validator per flow schema.
var compiled sync.Map

func compileSchema(schema *llm.Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(schema); ok {
		return cached.(*jsonschema.Schema), nil
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encode output schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode output schema: %w", err)
	}

	const location = "mem://motorsense/output.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(location, doc); err != nil {
		return nil, fmt.Errorf("add output schema: %w", err)
	}
	sch, err := compiler.Compile(location)
	if err != nil {
		return nil, fmt.Errorf("compile output schema: %w", err)
	}

	actual, _ := compiled.LoadOrStore(schema, sch)
	return actual.(*jsonschema.Schema), nil
}

func validate(schema *llm.Schema, value any) error {
	if schema == nil {
		return nil
	}

	sch, err := compileSchema(schema)
	if err != nil {
		return err
	}

	err = sch.Validate(value)
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	return outputError(firstLeaf(verr))
}

func firstLeaf(verr *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	return verr
}

// outputError names the offending value in dotted form, parts[0].price.
func outputError(verr *jsonschema.ValidationError) *OutputError {
	path := ""
	for _, segment := range verr.InstanceLocation {
		if _, err := strconv.Atoi(segment); err == nil {
			path += "[" + segment + "]"
			continue
		}
		path = joinPath(path, segment)
	}

	switch k := verr.ErrorKind.(type) {
	case *kind.Required:
		if len(k.Missing) > 0 {
			path = joinPath(path, k.Missing[0])
		}
		return &OutputError{Path: path, Reason: "is required"}
	case *kind.Type:
		return &OutputError{Path: path, Reason: "must be " + strings.Join(k.Want, " or ")}
	default:
		return &OutputError{Path: path, Reason: "does not match the schema"}
	}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
