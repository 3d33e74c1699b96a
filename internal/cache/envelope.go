package cache

import (
	"encoding/json"
	"time"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/version"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// Envelope wraps every cached payload with its schema version and kind.
type Envelope struct {
	SchemaVersion string          `json:"schema_version"`
	Kind          Kind            `json:"kind"`
	StoredAt      time.Time       `json:"stored_at"`
	Payload       json.RawMessage `json:"payload"`
}

// Encode serializes value into an envelope of the given kind.
func Encode(kind Kind, value any, now time.Time) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeCacheMalformed, err, "failed to encode %s payload", kind)
	}

	raw, err := json.Marshal(Envelope{
		SchemaVersion: version.SchemaVersion,
		Kind:          kind,
		StoredAt:      now.UTC(),
		Payload:       payload,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeCacheMalformed, err, "failed to encode %s envelope", kind)
	}

	return raw, nil
}

// Decode checks the envelope schema version and kind, then decodes the payload into dst.
// Any mismatch is reported as ErrCodeCacheMalformed and must be treated as a miss.
func Decode(raw []byte, kind Kind, dst any) error {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return errors.Wrap(errors.ErrCodeCacheMalformed, "cached entry is not an envelope", err)
	}

	if err := version.CheckSchema(envelope.SchemaVersion); err != nil {
		return errors.Wrapf(errors.ErrCodeCacheMalformed, err, "cached %s entry has an incompatible schema", kind)
	}

	if envelope.Kind != kind {
		return errors.Newf(errors.ErrCodeCacheMalformed, "cached entry holds %s, expected %s", envelope.Kind, kind)
	}

	if err := json.Unmarshal(envelope.Payload, dst); err != nil {
		return errors.Wrapf(errors.ErrCodeCacheMalformed, err, "failed to decode %s payload", kind)
	}

	return nil
}
