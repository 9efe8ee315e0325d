package domain

import "fmt"

// Kind classifies a timeline block for coverage analytics.
// The set is closed; unknown names are rejected when decoding.
type Kind uint8

const (
	// KindUnset is the zero value. It never names a real block and is
	// rejected when encoding.
	KindUnset Kind = iota
	KindPhoto
	KindEvent
	KindBuffer
	KindTravel
	// KindWindow marks a block that mostly overlaps other work (cocktail hour
	// without a first look). Analytics only count its uncovered minutes.
	KindWindow
	// KindCoverage is reserved for the zero-length "coverage ends" sentinel.
	KindCoverage
)

var kindNames = [...]string{
	KindUnset:    "",
	KindPhoto:    "photo",
	KindEvent:    "event",
	KindBuffer:   "buffer",
	KindTravel:   "travel",
	KindWindow:   "window",
	KindCoverage: "coverage",
}

// Kinds lists every valid Kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindPhoto, KindEvent, KindBuffer, KindTravel, KindWindow, KindCoverage}
}

func (k Kind) String() string {
	if k != KindUnset && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a lowercase name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name != "" && name == s {
			return Kind(i), nil
		}
	}
	return KindUnset, fmt.Errorf("%w: unknown block kind %q", ErrValidation, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k == KindUnset || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid block kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Audience says who a block is "for". It is informational only and drives
// the audience filter of the text export.
type Audience uint8

const (
	AudienceVendor Audience = iota
	AudienceCouple
	AudienceWeddingParty
	AudienceInternal
)

var audienceNames = [...]string{
	AudienceVendor:       "Vendor",
	AudienceCouple:       "Couple",
	AudienceWeddingParty: "Wedding Party",
	AudienceInternal:     "Internal",
}

func (a Audience) String() string {
	if int(a) < len(audienceNames) {
		return audienceNames[a]
	}
	return fmt.Sprintf("Audience(%d)", uint8(a))
}

// ParseAudience maps a display name ("Wedding Party") back to its Audience.
func ParseAudience(s string) (Audience, error) {
	for i, name := range audienceNames {
		if name == s {
			return Audience(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown audience %q", ErrValidation, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Audience) MarshalText() ([]byte, error) {
	if int(a) >= len(audienceNames) {
		return nil, fmt.Errorf("invalid audience %d", uint8(a))
	}
	return []byte(audienceNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Audience) UnmarshalText(b []byte) error {
	parsed, err := ParseAudience(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
