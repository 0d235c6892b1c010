package unisearch

import (
	"strings"
)

const skinToneSuffix = "skin tone"

// SkinToneTag is the tag every emoji with a skin-tone modifier carries.
const SkinToneTag = "skin-tone"

// Normalize turns a raw record into a normalized record with a canonical tag
// set. order is the record's index in ingestion sequence.
func Normalize(raw RawRecord, order int) (Record, error) {
	if err := raw.Validate(); err != nil {
		return Record{}, err
	}
	tags := []string{
		DeriveTag(raw.Group),
		DeriveTag(raw.Subgroup),
		DeriveTag(string(raw.Qualification)),
		DeriveTag(raw.Version),
	}
	tone, hasTone, flagged := SkinTone(raw.Description)
	if hasTone {
		tags = append(tags, SkinToneTag, tone)
	}
	if flagged {
		CT().P("codepoints", raw.Codepoints.String()).
			Infof("skin tone description without usable tone name: %q", raw.Description)
	}
	tags = append(tags, raw.Keywords...)
	return Record{
		RawRecord: raw,
		Tags:      NewTagSet(tags...),
		Order:     order,
	}, nil
}

// SkinTone extracts the skin tone from descriptions like
//
//    woman: medium-light skin tone   => "medium-light"
//
// hasTone is true for every description ending in "skin tone". The tone name
// is taken from 2 characters after the last colon up to the suffix " skin tone".
// This is a heuristic tied to the description grammar of emoji-test.txt.
// Descriptions ending in "skin tone" for which no tone name can be extracted
// are flagged. Multi-person descriptions like "kiss: woman, man, light skin
// tone" yield a tone containing commas; it is kept, but flagged, as tag filters
// split on commas and cannot select it.
func SkinTone(description string) (tone string, hasTone bool, flagged bool) {
	if !strings.HasSuffix(description, skinToneSuffix) {
		return "", false, false
	}
	colon := strings.LastIndex(description, ":")
	end := len(description) - len(skinToneSuffix) - 1
	if colon < 0 || colon+2 >= end {
		return "", true, true
	}
	tone = DeriveTag(description[colon+2 : end])
	return tone, true, strings.Contains(tone, ",")
}

// NormalizeReport summarizes a call to NormalizeAll.
type NormalizeReport struct {
	Normalized int     // number of records normalized
	Invalid    []error // records skipped for violating record invariants
	Flagged    int     // records with a skin tone suffix but no extractable tone name
}

// NormalizeAll normalizes a sequence of raw records, assigning a zero-based,
// strictly increasing order to each record. Invalid records are skipped and
// reported; they do not consume an order index.
func NormalizeAll(raws []RawRecord) ([]Record, NormalizeReport) {
	var report NormalizeReport
	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := Normalize(raw, len(records))
		if err != nil {
			report.Invalid = append(report.Invalid, err)
			continue
		}
		if _, _, flagged := SkinTone(raw.Description); flagged {
			report.Flagged++
		}
		records = append(records, rec)
	}
	report.Normalized = len(records)
	CT().Debugf("normalized %d records, %d invalid, %d flagged",
		report.Normalized, len(report.Invalid), report.Flagged)
	return records, report
}
