// Package catalog models the Kepler Objects of Interest table and the row
// filters applied before any statistic is computed.
package catalog

import (
	"fmt"
	"math"
	"strconv"

	"koistat/domain/core"
	"koistat/domain/series"
)

// Disposition is the archive's verdict on a candidate.
type Disposition string

const (
	DispositionConfirmed     Disposition = "CONFIRMED"
	DispositionFalsePositive Disposition = "FALSE POSITIVE"
	DispositionCandidate     Disposition = "CANDIDATE"
)

// Column names a numeric field of the catalog, using the archive's headers.
type Column string

const (
	ColModelSNR        Column = "koi_model_snr"
	ColPlanetRadius    Column = "koi_prad"
	ColEquilibriumTemp Column = "koi_teq"
	ColOrbitalPeriod   Column = "koi_period"
	ColStellarRadius   Column = "koi_srad"
)

// Header names of the non-numeric fields.
const (
	HeaderKepID       = "kepid"
	HeaderName        = "kepoi_name"
	HeaderDisposition = "koi_disposition"
)

// NumericColumns lists every numeric column a Record carries.
var NumericColumns = []Column{ColModelSNR, ColPlanetRadius, ColEquilibriumTemp, ColOrbitalPeriod, ColStellarRadius}

// Record is one candidate planet. Missing numeric values are NaN; a missing
// host star is KepID 0.
type Record struct {
	KepID           int64       `json:"kepid"`
	Name            string      `json:"kepoi_name,omitempty"`
	Disposition     Disposition `json:"koi_disposition"`
	ModelSNR        float64     `json:"koi_model_snr"`
	PlanetRadius    float64     `json:"koi_prad"`
	EquilibriumTemp float64     `json:"koi_teq"`
	OrbitalPeriod   float64     `json:"koi_period"`
	StellarRadius   float64     `json:"koi_srad"`
}

// Value returns the record's value for a numeric column.
func (r Record) Value(col Column) (float64, error) {
	switch col {
	case ColModelSNR:
		return r.ModelSNR, nil
	case ColPlanetRadius:
		return r.PlanetRadius, nil
	case ColEquilibriumTemp:
		return r.EquilibriumTemp, nil
	case ColOrbitalPeriod:
		return r.OrbitalPeriod, nil
	case ColStellarRadius:
		return r.StellarRadius, nil
	}
	return math.NaN(), fmt.Errorf("%w: %s", core.ErrMissingColumn, col)
}

// SetValue assigns a numeric column.
func (r *Record) SetValue(col Column, v float64) error {
	switch col {
	case ColModelSNR:
		r.ModelSNR = v
	case ColPlanetRadius:
		r.PlanetRadius = v
	case ColEquilibriumTemp:
		r.EquilibriumTemp = v
	case ColOrbitalPeriod:
		r.OrbitalPeriod = v
	case ColStellarRadius:
		r.StellarRadius = v
	default:
		return fmt.Errorf("%w: %s", core.ErrMissingColumn, col)
	}
	return nil
}

// Catalog is an in-memory, read-only list of records.
type Catalog struct {
	records []Record
}

// New copies records into a catalog.
func New(records []Record) *Catalog {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Catalog{records: cp}
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Records returns a copy of the records.
func (c *Catalog) Records() []Record {
	cp := make([]Record, len(c.records))
	copy(cp, c.records)
	return cp
}

// Filter returns a new catalog holding the records that satisfy every predicate.
func (c *Catalog) Filter(preds ...Predicate) *Catalog {
	out := make([]Record, 0, len(c.records))
	for _, r := range c.records {
		keep := true
		for _, p := range preds {
			if !p(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return &Catalog{records: out}
}

// Count returns how many records satisfy every predicate.
func (c *Catalog) Count(preds ...Predicate) int {
	return c.Filter(preds...).Len()
}

// Column extracts a numeric series. Callers filter out missing values first;
// a NaN surviving to this point is reported as ErrNonFinite.
func (c *Catalog) Column(col Column) (series.Numeric, error) {
	values := make([]float64, len(c.records))
	for i, r := range c.records {
		v, err := r.Value(col)
		if err != nil {
			return series.Numeric{}, err
		}
		values[i] = v
	}
	return series.NewNumeric(string(col), values)
}

// LabeledColumn pairs a numeric column with each record's disposition.
func (c *Catalog) LabeledColumn(col Column) (series.Labeled, error) {
	values, err := c.Column(col)
	if err != nil {
		return series.Labeled{}, err
	}
	labels := make([]string, len(c.records))
	for i, r := range c.records {
		labels[i] = string(r.Disposition)
	}
	return series.NewLabeled(values, labels)
}

// HostStars returns the host-star identifier of every record, in order.
func (c *Catalog) HostStars() []string {
	keys := make([]string, len(c.records))
	for i, r := range c.records {
		keys[i] = strconv.FormatInt(r.KepID, 10)
	}
	return keys
}
