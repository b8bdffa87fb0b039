package menu

import (
	"math"
	"testing"
)

func doc(sections ...Section) *MenuDocument {
	return &MenuDocument{Currency: DefaultCurrency, Sections: sections}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		doc  *MenuDocument
		want Characteristics
	}{
		{
			name: "two sections five items no images",
			doc: doc(
				Section{ID: "s1", Name: "Starters", Items: []Item{
					{ID: "i1", Name: "Soup"}, {ID: "i2", Name: "Salad"},
				}},
				Section{ID: "s2", Name: "Mains", Items: []Item{
					{ID: "i3", Name: "Steak"}, {ID: "i4", Name: "Fish"}, {ID: "i5", Name: "Pasta"},
				}},
			),
			want: Characteristics{
				SectionCount:       2,
				TotalItems:         5,
				AvgItemsPerSection: 2.5,
				ImageRatio:         0,
			},
		},
		{
			name: "single item document",
			doc: doc(Section{ID: "s1", Name: "All", Items: []Item{
				{ID: "i1", Name: "Dish", ImageRef: "x.jpg"},
			}}),
			want: Characteristics{
				SectionCount:       1,
				TotalItems:         1,
				AvgItemsPerSection: 1,
				ImageRatio:         1,
			},
		},
		{
			name: "empty section contributes to average",
			doc: doc(
				Section{ID: "s1", Name: "Specials"},
				Section{ID: "s2", Name: "Mains", Items: []Item{
					{ID: "i1", Name: "Stew", Description: "Slow cooked"},
				}},
			),
			want: Characteristics{
				SectionCount:       2,
				TotalItems:         1,
				AvgItemsPerSection: 0.5,
				HasDescriptions:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.doc)
			if got != tt.want {
				t.Errorf("Analyze() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeImageRatio(t *testing.T) {
	d := doc(Section{ID: "s1", Name: "Mains", Items: []Item{
		{ID: "i1", Name: "A", ImageRef: "a.jpg"},
		{ID: "i2", Name: "B"},
		{ID: "i3", Name: "C", ImageRef: "c.jpg"},
		{ID: "i4", Name: "D"},
	}})
	got := Analyze(d)
	if math.Abs(got.ImageRatio-0.5) > 1e-9 {
		t.Errorf("ImageRatio = %v, want 0.5", got.ImageRatio)
	}
}

func TestAnalyzeBlankImageRefIgnored(t *testing.T) {
	d := doc(Section{ID: "s1", Name: "Mains", Items: []Item{
		{ID: "i1", Name: "A", ImageRef: "   "},
	}})
	if got := Analyze(d); got.ImageRatio != 0 {
		t.Errorf("whitespace image ref counted, ImageRatio = %v", got.ImageRatio)
	}
}
