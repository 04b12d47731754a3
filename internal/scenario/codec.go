// Package scenario generates, encodes, decodes and migrates scenario
// parameter sets.
package scenario

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/logging"
)

// QueryParam is the URL query parameter carrying a base64 envelope.
const QueryParam = "scenario"

var (
	// ErrMalformedEnvelope is returned when the text is not a JSON (or base64
	// JSON) object with a numeric integral version.
	ErrMalformedEnvelope = errors.New("malformed scenario envelope")
	// ErrUnsupportedVersion is returned for well-formed envelopes of another version.
	ErrUnsupportedVersion = errors.New("unsupported scenario version")
	// ErrMissingParams is returned when the envelope has no params object.
	ErrMissingParams = errors.New("scenario envelope has no params")
)

//go:embed schema/envelope.schema.json
var envelopeSchemaJSON string

var (
	envelopeSchemaOnce sync.Once
	envelopeSchema     *gojsonschema.Schema
	envelopeSchemaErr  error
)

func compiledEnvelopeSchema() (*gojsonschema.Schema, error) {
	envelopeSchemaOnce.Do(func() {
		envelopeSchema, envelopeSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(envelopeSchemaJSON))
	})
	return envelopeSchema, envelopeSchemaErr
}

// Decoded is a successfully parsed and merged envelope.
type Decoded struct {
	Version  int
	Encoding string // "json" or "base64"
	Params   domain.ScenarioParams
	Report   MergeReport
}

// Codec converts scenarios to and from envelopes. Decoding merges payloads
// onto the scenario returned by Defaults.
type Codec struct {
	Logger   logging.Logger
	Defaults func() domain.ScenarioParams
}

// NewCodec creates a codec merging onto freshly generated defaults.
func NewCodec(logger logging.Logger) *Codec {
	return &Codec{Logger: logging.OrNop(logger), Defaults: Defaults}
}

var defaultCodec = NewCodec(nil)

// Encode serializes params as a current-version JSON envelope.
func Encode(params domain.ScenarioParams) (string, error) {
	return defaultCodec.Encode(params)
}

// Decode parses text, falling back to generated defaults on any failure.
func Decode(text string) domain.ScenarioParams {
	return defaultCodec.Decode(text)
}

// Encode serializes params as a current-version JSON envelope.
func (c *Codec) Encode(params domain.ScenarioParams) (string, error) {
	b, err := json.Marshal(NewEnvelope(params))
	if err != nil {
		return "", fmt.Errorf("failed to encode scenario: %w", err)
	}
	return string(b), nil
}

// EncodeBase64 returns the standard base64 form of the JSON envelope.
func (c *Codec) EncodeBase64(params domain.ScenarioParams) (string, error) {
	s, err := c.Encode(params)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(s)), nil
}

// ShareURL places the base64 envelope into the scenario query parameter of base.
func (c *Codec) ShareURL(base string, params domain.ScenarioParams) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid share base URL %q: %w", base, err)
	}
	encoded, err := c.EncodeBase64(params)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(QueryParam, encoded)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromURL extracts the envelope text from a share URL.
func FromURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: invalid URL: %v", ErrMalformedEnvelope, err)
	}
	v := u.Query().Get(QueryParam)
	if v == "" {
		return "", fmt.Errorf("%w: no %q query parameter", ErrMalformedEnvelope, QueryParam)
	}
	return v, nil
}

// Parse decodes text strictly: any fallback condition is reported as an error
// wrapping ErrMalformedEnvelope, ErrUnsupportedVersion or ErrMissingParams.
func (c *Codec) Parse(text string) (*Decoded, error) {
	doc, encoding, err := parseDocument(text)
	if err != nil {
		return nil, err
	}
	if err := validateEnvelope(doc); err != nil {
		return nil, err
	}

	version, ok := asInt(doc["version"])
	if !ok {
		return nil, fmt.Errorf("%w: version %v is not an integer", ErrMalformedEnvelope, doc["version"])
	}
	if version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	raw, ok := asObject(doc["params"])
	if !ok {
		return nil, ErrMissingParams
	}

	params, report := Merge(c.defaults(), raw)
	return &Decoded{Version: version, Encoding: encoding, Params: params, Report: report}, nil
}

// DecodeWithFallback parses text and returns the merged scenario. On failure it
// returns generated defaults together with the reason.
func (c *Codec) DecodeWithFallback(text string) (domain.ScenarioParams, error) {
	d, err := c.Parse(text)
	if err != nil {
		log := logging.OrNop(c.Logger)
		if errors.Is(err, ErrUnsupportedVersion) {
			log.Warnf("Unsupported scenario payload version, using defaults: %v", err)
		} else {
			log.Debugf("Scenario payload not usable, using defaults: %v", err)
		}
		return c.defaults(), err
	}
	if !d.Report.Clean() {
		logging.OrNop(c.Logger).Infof("Scenario merged with adjustments: rejected=%v dropped=%d unknown=%v",
			d.Report.Rejected, d.Report.Dropped, d.Report.Unknown)
	}
	return d.Params, nil
}

// Decode parses text, falling back to generated defaults on any failure.
func (c *Codec) Decode(text string) domain.ScenarioParams {
	p, _ := c.DecodeWithFallback(text)
	return p
}

func (c *Codec) defaults() domain.ScenarioParams {
	if c.Defaults == nil {
		return Defaults()
	}
	return c.Defaults()
}

// parseDocument tries JSON first, then base64-wrapped JSON.
func parseDocument(text string) (map[string]any, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", fmt.Errorf("%w: empty input", ErrMalformedEnvelope)
	}

	v, jsonErr := decodeJSON([]byte(text))
	if jsonErr == nil {
		doc, ok := asObject(v)
		if !ok {
			return nil, "", fmt.Errorf("%w: envelope is not an object", ErrMalformedEnvelope)
		}
		return doc, "json", nil
	}

	raw, ok := decodeBase64(text)
	if !ok {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedEnvelope, jsonErr)
	}
	v, err := decodeJSON(raw)
	if err != nil {
		return nil, "", fmt.Errorf("%w: base64 payload: %v", ErrMalformedEnvelope, err)
	}
	doc, ok := asObject(v)
	if !ok {
		return nil, "", fmt.Errorf("%w: envelope is not an object", ErrMalformedEnvelope)
	}
	return doc, "base64", nil
}

func decodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

// decodeBase64 accepts standard and URL-safe alphabets, padded or raw. Spaces
// are treated as '+' since query strings often arrive with '+' unescaped.
func decodeBase64(s string) ([]byte, bool) {
	s = strings.ReplaceAll(s, " ", "+")
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return b, true
		}
	}
	return nil, false
}

func validateEnvelope(doc map[string]any) error {
	schema, err := compiledEnvelopeSchema()
	if err != nil {
		return fmt.Errorf("failed to compile envelope schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformedEnvelope, strings.Join(msgs, "; "))
}
