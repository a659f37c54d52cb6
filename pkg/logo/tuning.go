package logo

// Tuning holds the magic numbers used by the extractor. These are currently
// static but centralized here to keep the thresholds out of the scan loops.
type Tuning struct {
	// Classification
	WhiteMin uint8 `json:"white_min"` // Default: 240 (channel floor for "near white")
	BlackMax uint8 `json:"black_max"` // Default: 15 (channel ceiling for "near black")
	AlphaMin uint8 `json:"alpha_min"` // Default: 50 (pixels at or below are transparent)

	// Reporting
	NeedsCropPct float64 `json:"needs_crop_pct"` // Default: 15 (per-side padding % that flags a crop)

	// Encoding
	EncodeQuality int `json:"encode_quality"` // Default: 95
}

// DefaultTuning returns the thresholds the original logo pass shipped with.
func DefaultTuning() Tuning {
	return Tuning{
		WhiteMin:      240,
		BlackMax:      15,
		AlphaMin:      50,
		NeedsCropPct:  15,
		EncodeQuality: 95,
	}
}
