package model

// Project represents a climate solution project as stored in the
// `projects` table.  Each project belongs to exactly one sector.
// SectorName is populated from a join with the `sectors` table when
// reading; it is not a column of `projects` itself.
type Project struct {
	ID                uint64 // projects.id
	Title             string // projects.title
	FeatureImgURL     string // projects.feature_img_url
	SummaryShort      string // projects.summary_short
	IntroShort        string // projects.intro_short
	Impact            string // projects.impact
	OriginalSourceURL string // projects.original_source_url
	SectorID          uint64 // projects.sector_id
	SectorName        string // sectors.sector_name (joined)
}

// Sector is a row of the `sectors` table used to group projects and
// to populate the sector dropdown on the add/edit forms.
type Sector struct {
	ID   uint64 // sectors.id
	Name string // sectors.sector_name
}
