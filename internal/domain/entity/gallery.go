package entity

// GalleryView is the pipeline output handed to a rendering surface
type GalleryView struct {
	Entries []ClassifiedEntry `json:"items"`
	Years   []int             `json:"years"`
	Loading bool              `json:"loading"`
}

// NoMatches reports a finished view whose filters matched nothing
func (v GalleryView) NoMatches() bool {
	return !v.Loading && len(v.Entries) == 0
}
