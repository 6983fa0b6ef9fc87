package planning

import "time"

// Options tunes the view engine. The zero value is not useful; start from
// DefaultOptions and override individual fields.
type Options struct {
	// MonthBarCap is the number of bars a month-view week shows before "+N more".
	MonthBarCap int `yaml:"month_bar_cap" json:"month_bar_cap"`
	// QuarterBarCap is the number of bars a quarter-view week shows before "+N".
	QuarterBarCap int `yaml:"quarter_bar_cap" json:"quarter_bar_cap"`
	// YearBarCap is the number of bars a year-view week shows. Extra bars are
	// dropped without a marker.
	YearBarCap int `yaml:"year_bar_cap" json:"year_bar_cap"`
	// SummaryCap is the number of trip chips shown while the summary is collapsed.
	SummaryCap int `yaml:"summary_cap" json:"summary_cap"`
	// GapThresholdDays is the minimum free stretch that gets an inventory gap row.
	GapThresholdDays int `yaml:"gap_threshold_days" json:"gap_threshold_days"`
	// QuickAddDays is the inclusive length of the range a single day click proposes.
	QuickAddDays int `yaml:"quick_add_days" json:"quick_add_days"`
	// AutoEnableCountry is enabled once when a user has no holiday country.
	AutoEnableCountry string `yaml:"auto_enable_country" json:"auto_enable_country"`
	// Timezone is the IANA zone "today" is computed in. Empty means UTC.
	Timezone string `yaml:"timezone" json:"timezone,omitempty"`
}

// DefaultOptions returns the stock engine settings.
func DefaultOptions() Options {
	return Options{
		MonthBarCap:       3,
		QuarterBarCap:     3,
		YearBarCap:        2,
		SummaryCap:        8,
		GapThresholdDays:  14,
		QuickAddDays:      7,
		AutoEnableCountry: "US",
	}
}

// withDefaults fills non-positive fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MonthBarCap <= 0 {
		o.MonthBarCap = d.MonthBarCap
	}
	if o.QuarterBarCap <= 0 {
		o.QuarterBarCap = d.QuarterBarCap
	}
	if o.YearBarCap <= 0 {
		o.YearBarCap = d.YearBarCap
	}
	if o.SummaryCap <= 0 {
		o.SummaryCap = d.SummaryCap
	}
	if o.GapThresholdDays <= 0 {
		o.GapThresholdDays = d.GapThresholdDays
	}
	if o.QuickAddDays <= 0 {
		o.QuickAddDays = d.QuickAddDays
	}
	if o.AutoEnableCountry == "" {
		o.AutoEnableCountry = d.AutoEnableCountry
	}
	return o
}

// Today formats now as a date in the configured zone. An unknown zone falls back to UTC.
func (o Options) Today(now time.Time) string {
	loc := time.UTC
	if o.Timezone != "" {
		if l, err := time.LoadLocation(o.Timezone); err == nil {
			loc = l
		}
	}
	return now.In(loc).Format(DateLayout)
}
