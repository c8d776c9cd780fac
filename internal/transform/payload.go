package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Payload is a decoded CommCare form submission.
type Payload map[string]any

// ParsePayload decodes raw submission JSON.
func ParsePayload(raw json.RawMessage) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("invalid submission payload: %w", err)
	}
	return p, nil
}

// Form returns the form block of the submission.
func (p Payload) Form() Map {
	return Map(p).Map("form")
}

// FormName returns the form's @name attribute.
func (p Payload) FormName() string {
	return p.Form().String("@name")
}

// Domain returns the CommCare project space the submission came from.
func (p Payload) Domain() string {
	return Map(p).String("domain")
}

// AppID returns the CommCare application id.
func (p Payload) AppID() string {
	return Map(p).String("app_id")
}

// BuildVersion returns the numeric app build version, 0 when absent.
func (p Payload) BuildVersion() int {
	v := Map(p).Map("metadata").String("app_build_version")
	if v == "" {
		v = p.Form().Map("meta").String("appVersion")
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

// FormVersion returns the form's @version attribute, 0 when absent.
func (p Payload) FormVersion() int {
	n, err := strconv.Atoi(strings.TrimSpace(p.Form().String("@version")))
	if err != nil {
		return 0
	}
	return n
}

// SubmissionID returns the unique submission id.
func (p Payload) SubmissionID() string {
	return Map(p).String("id")
}

// InstanceID returns the form instance id used in attachment URLs.
func (p Payload) InstanceID() string {
	return p.Form().Map("meta").String("instanceID")
}

// AttachmentURL builds the CommCare HQ URL for a named attachment.
func (p Payload) AttachmentURL(baseURL, name string) string {
	return fmt.Sprintf("%s/a/%s/api/form/attachment/%s/%s", baseURL, p.Domain(), p.InstanceID(), name)
}

// Map is a JSON object with tolerant typed accessors. Missing keys and type
// mismatches yield zero values, mirroring how CommCare payloads are probed.
type Map map[string]any

func (m Map) Map(key string) Map {
	if m == nil {
		return nil
	}
	child, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	return Map(child)
}

func (m Map) List(key string) []any {
	if m == nil {
		return nil
	}
	list, ok := m[key].([]any)
	if !ok {
		return nil
	}
	return list
}

// String returns the value under key rendered as a string. Numbers are
// formatted; objects and arrays yield "".
func (m Map) String(key string) string {
	if m == nil {
		return ""
	}
	return Stringify(m[key])
}

func (m Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m[key]
	return ok
}

// Value returns the raw value under key.
func (m Map) Value(key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

// Stringify renders a scalar JSON value as a string.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// GPS is a parsed positional coordinate triple. Nil fields mean the value was
// absent or unparseable; GPS failures never fail a transformation.
type GPS struct {
	Latitude  *float64
	Longitude *float64
	Altitude  *float64
}

// ParseGPS parses the CommCare GPS format "lat lon alt accuracy". Any parse
// failure degrades the whole triple to nil.
func ParseGPS(raw string) GPS {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return GPS{}
	}

	parts := strings.Fields(raw)
	values := make([]*float64, 3)
	for i := 0; i < 3 && i < len(parts); i++ {
		f, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return GPS{}
		}
		values[i] = &f
	}
	return GPS{Latitude: values[0], Longitude: values[1], Altitude: values[2]}
}

// SplitMultiselect splits a space-separated multiselect answer into tokens.
func SplitMultiselect(raw string) []string {
	return strings.Fields(strings.TrimSpace(raw))
}

// ParseDate parses a CommCare date ("2006-01-02"), returning nil when blank
// or unparseable.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// ParseIntPtr parses an integer, tolerating float renderings like "12.0".
func ParseIntPtr(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

func ParseFloatPtr(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return &f
	}
	return nil
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}

// ParseYesNo maps CommCare boolean answers ("1"/"0") to a bool, nil otherwise.
func ParseYesNo(raw string) *bool {
	switch strings.TrimSpace(raw) {
	case "1":
		return BoolPtr(true)
	case "0":
		return BoolPtr(false)
	default:
		return nil
	}
}
