package taste_test

import (
	"fmt"
	"testing"

	"github.com/plazor/steampicker/internal/domain/model"
	"github.com/plazor/steampicker/internal/domain/taste"
	. "github.com/smartystreets/goconvey/convey"
)

func enriched(genres, categories []string) model.EnrichedMetadata {
	return model.EnrichedMetadata{Genres: genres, Categories: categories}
}

func TestInfer(t *testing.T) {
	Convey("Given a library with playtime across genres", t, func() {
		library := []model.LibraryEntry{
			{AppID: 1, Minutes: 6000},
			{AppID: 2, Minutes: 1200},
			{AppID: 3, Minutes: 300},
		}
		enrich := map[int]model.EnrichedMetadata{
			1: enriched([]string{"RPG", "Adventure"}, []string{"Single-player"}),
			2: enriched([]string{"Action"}, []string{"Multi-player", "Co-op"}),
			3: enriched([]string{"Action", "Indie"}, []string{"Single-player"}),
		}

		Convey("When inferring taste", func() {
			profile := taste.Infer(library, enrich)

			Convey("Then genres are ordered by accumulated minutes", func() {
				So(profile.FavoriteGenres, ShouldResemble, []string{"RPG", "Adventure", "Action", "Indie"})
			})

			Convey("And categories likewise", func() {
				So(profile.FavoriteCategories, ShouldResemble, []string{"Single-player", "Multi-player", "Co-op"})
			})
		})
	})

	Convey("Given tags with identical accumulated weight", t, func() {
		library := []model.LibraryEntry{{AppID: 1, Minutes: 100}}
		enrich := map[int]model.EnrichedMetadata{
			1: enriched([]string{"Strategy", "Simulation"}, nil),
		}

		Convey("Then first-encountered order wins the tie", func() {
			profile := taste.Infer(library, enrich)
			So(profile.FavoriteGenres, ShouldResemble, []string{"Strategy", "Simulation"})
		})
	})

	Convey("Given more tags than the profile keeps", t, func() {
		var library []model.LibraryEntry
		enrich := map[int]model.EnrichedMetadata{}
		for i := 0; i < 12; i++ {
			id := i + 1
			library = append(library, model.LibraryEntry{AppID: id, Minutes: (12 - i) * 60})
			enrich[id] = enriched([]string{fmt.Sprintf("g%02d", i)}, []string{fmt.Sprintf("c%02d", i)})
		}

		Convey("Then only the top 8 genres and top 6 categories survive", func() {
			profile := taste.Infer(library, enrich)
			So(profile.FavoriteGenres, ShouldHaveLength, 8)
			So(profile.FavoriteCategories, ShouldHaveLength, 6)
			So(profile.FavoriteGenres[0], ShouldEqual, "g00")
			So(profile.FavoriteGenres[7], ShouldEqual, "g07")
		})
	})

	Convey("Given entries without enrichment", t, func() {
		library := []model.LibraryEntry{
			{AppID: 1, Minutes: 99999},
			{AppID: 2, Minutes: 10},
		}
		enrich := map[int]model.EnrichedMetadata{
			2: enriched([]string{"Puzzle"}, nil),
		}

		Convey("Then unknown entries contribute nothing", func() {
			profile := taste.Infer(library, enrich)
			So(profile.FavoriteGenres, ShouldResemble, []string{"Puzzle"})
		})
	})

	Convey("Given an empty library", t, func() {
		profile := taste.Infer(nil, nil)

		Convey("Then the profile is zero", func() {
			So(profile.IsZero(), ShouldBeTrue)
		})
	})
}
