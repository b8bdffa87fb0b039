package menu

// Characteristics are scalar statistics derived from a canonical document.
// They are the selector's only input, so anything the preset heuristics need
// must be computed here, once, and nowhere else.
type Characteristics struct {
	SectionCount       int     `json:"section_count" bson:"section_count"`
	TotalItems         int     `json:"total_items" bson:"total_items"`
	AvgItemsPerSection float64 `json:"avg_items_per_section" bson:"avg_items_per_section"`
	ImageRatio         float64 `json:"image_ratio" bson:"image_ratio"`
	HasDescriptions    bool    `json:"has_descriptions" bson:"has_descriptions"`
}

// Analyze derives characteristics from a document. It is a pure function with
// no failure modes: a single-item document, a document with no images, or any
// other valid document always produces a result.
func Analyze(d *MenuDocument) Characteristics {
	ch := Characteristics{SectionCount: len(d.Sections)}

	withImage := 0
	for i := range d.Sections {
		for j := range d.Sections[i].Items {
			it := &d.Sections[i].Items[j]
			ch.TotalItems++
			if it.HasImage() {
				withImage++
			}
			if it.HasDescription() {
				ch.HasDescriptions = true
			}
		}
	}

	if ch.SectionCount > 0 {
		ch.AvgItemsPerSection = float64(ch.TotalItems) / float64(ch.SectionCount)
	}
	if ch.TotalItems > 0 {
		ch.ImageRatio = float64(withImage) / float64(ch.TotalItems)
	}
	return ch
}
