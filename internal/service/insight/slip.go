package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

var (
	// ErrSlipUnreadable is returned when the reply cannot be parsed. The user
	// enters the values by hand instead.
	ErrSlipUnreadable = errors.New("could not parse slip clearly")
	// ErrEmptyImage is returned for an empty upload.
	ErrEmptyImage = errors.New("slip image is empty")
)

const defaultImageType = "image/jpeg"

// slipFields describes the reply the provider must produce.
type slipFields struct {
	Qty  float64 `json:"qty" jsonschema:"description=Quantity in litres. 0 if not found"`
	Fat  float64 `json:"fat" jsonschema:"description=Fat percentage. 0 if not found"`
	SNF  float64 `json:"snf" jsonschema:"description=Solids-not-fat percentage. 0 if not found"`
	Rate float64 `json:"rate" jsonschema:"description=Rate per litre in INR. 0 if not found"`
}

// slipInstructions builds the extraction prompt with the JSON schema inlined.
func slipInstructions() (string, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema, err := json.Marshal(reflector.Reflect(&slipFields{}))
	if err != nil {
		return "", fmt.Errorf("failed to marshal slip schema: %w", err)
	}
	return fmt.Sprintf("Extract milk slip data: Quantity (litres), Fat (%%), SNF (%%), and Rate per litre (INR). "+
		"Return ONLY valid JSON matching this schema. Use 0 if a value is not found.\n%s", schema), nil
}

// stripFences removes markdown code fences around a JSON reply.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ParseSlip reads a provider reply. Each field is read on its own: missing,
// null or non-numeric values are zero. Only a reply that is not a JSON object
// is unreadable.
func ParseSlip(text string) (models.SlipReading, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		return models.SlipReading{}, fmt.Errorf("%w: %v", ErrSlipUnreadable, err)
	}
	if raw == nil {
		return models.SlipReading{}, fmt.Errorf("%w: reply is not an object", ErrSlipUnreadable)
	}

	fields := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		fields[strings.ToLower(strings.TrimSpace(key))] = value
	}

	return models.SlipReading{
		Qty:  slipNumber(fields["qty"]),
		Fat:  slipNumber(fields["fat"]),
		SNF:  slipNumber(fields["snf"]),
		Rate: slipNumber(fields["rate"]),
	}, nil
}

// slipNumber accepts a JSON number or a numeric string and yields zero for
// anything else.
func slipNumber(value json.RawMessage) decimal.Decimal {
	if len(value) == 0 {
		return decimal.Zero
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(value); err == nil {
		return d
	}
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		if d, err := decimal.NewFromString(strings.TrimSpace(text)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// ScanSlip asks the provider to read a photographed milk collection slip.
func (s *Service) ScanSlip(ctx context.Context, image []byte, mimeType string) (models.SlipReading, error) {
	if s.provider == nil {
		return models.SlipReading{}, ErrNoProvider
	}
	if len(image) == 0 {
		return models.SlipReading{}, ErrEmptyImage
	}
	if mimeType == "" {
		mimeType = defaultImageType
	}

	instructions, err := slipInstructions()
	if err != nil {
		return models.SlipReading{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.provider.ReadImage(ctx, image, mimeType, instructions)
	if err != nil {
		return models.SlipReading{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	reading, err := ParseSlip(text)
	if err != nil {
		s.logger.Info("slip reply not parseable", zap.String("reply", text))
		return models.SlipReading{}, err
	}
	return reading, nil
}
