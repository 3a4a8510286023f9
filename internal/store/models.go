package store

import (
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Record is one stored asset row: the normalized asset plus scan metadata.
type Record struct {
	ID           string
	Name         string
	SourceType   string
	Marketplace  string
	URL          string
	Description  string
	UserCount    int
	MRRPotential int
	Status       string
	Details      string
	Query        string
	Tier         string
	ScannedAt    time.Time
}

// QueryOpts filters and orders a GetAssets call.
type QueryOpts struct {
	Since       time.Time
	Status      string
	Query       string
	Search      string
	Limit       int
	ByUserCount bool
}

// FromAsset converts a scanned asset into a storable record.
func FromAsset(a asset.Asset, query, tier string, scannedAt time.Time) Record {
	return Record{
		ID:           a.ID,
		Name:         a.Name,
		SourceType:   string(a.Type),
		Marketplace:  a.Marketplace,
		URL:          a.URL,
		Description:  a.Description,
		UserCount:    a.UserCount,
		MRRPotential: a.MRRPotential,
		Status:       string(a.Status),
		Details:      a.DetailsNote,
		Query:        query,
		Tier:         tier,
		ScannedAt:    scannedAt,
	}
}

// Asset converts a stored record back into the normalized asset shape.
func (r Record) Asset() asset.Asset {
	return asset.Asset{
		ID:           r.ID,
		Name:         r.Name,
		Type:         asset.SourceType(r.SourceType),
		Marketplace:  r.Marketplace,
		URL:          r.URL,
		Description:  r.Description,
		UserCount:    r.UserCount,
		MRRPotential: r.MRRPotential,
		Status:       asset.Status(r.Status),
		DetailsNote:  r.Details,
	}
}
