package cell

// MaxSupportedLevel is the finest subdivision level of the S2 hierarchy.
const MaxSupportedLevel = 30

// EarthRadiusMeters is used to turn unit-sphere areas into metric areas.
const EarthRadiusMeters = 6.3781e6

// Config holds the knobs of the relation engine. It is passed explicitly
// through all calls instead of living in some global state, so that repeated
// runs with the same config produce identical output.
type Config struct {
	// MinLevel and MaxLevel bound the levels used for coverings. For the plain
	// level generation both must be equal.
	MinLevel int
	MaxLevel int

	// ToleranceDegrees treats near-coincident boundaries as touching during
	// classification and controls the segmentization of input geometries.
	ToleranceDegrees float64
}

func DefaultConfig() Config {
	return Config{
		MinLevel:         5,
		MaxLevel:         5,
		ToleranceDegrees: 1e-2,
	}
}

func (c Config) Validate() error {
	if err := ValidateLevel(c.MinLevel); err != nil {
		return err
	}
	if err := ValidateLevel(c.MaxLevel); err != nil {
		return err
	}
	if c.MinLevel > c.MaxLevel {
		return InvalidLevelErrorWithMessage(c.MinLevel, "min. level must not be larger than max. level")
	}
	return nil
}

// ValidateLevel returns an InvalidLevelError for levels outside the supported
// range of the cell hierarchy.
func ValidateLevel(level int) error {
	if level < 0 || level > MaxSupportedLevel {
		return NewInvalidLevelError(level)
	}
	return nil
}
