package match_test

import (
	"testing"

	"github.com/fedegiraudo/inmatch/internal/domain/match"
	"github.com/fedegiraudo/inmatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func fp(v float64) *float64 { return &v }

func TestMatcher_Score_Price(t *testing.T) {
	Convey("Given a matcher and a profile with only a price range", t, func() {
		m := match.New()
		p := model.SearchProfile{
			PriceMin: fp(100_000),
			PriceMax: fp(200_000),
		}
		l := model.Listing{Category: model.CategoryDepartamento, Operation: model.OperationVenta}

		Convey("When the price sits inside the range", func() {
			l.Price = 150_000
			r := m.Score(l, p)

			Convey("Then it earns the full 30 points and the in-range label", func() {
				So(r.Score, ShouldEqual, 30)
				So(r.Criteria, ShouldResemble, []string{match.LabelPriceInRange})
			})
		})

		Convey("When the price sits exactly at the floor or the ceiling", func() {
			l.Price = 100_000
			atFloor := m.Score(l, p)
			l.Price = 200_000
			atCeiling := m.Score(l, p)

			Convey("Then both bounds are inclusive and earn full credit", func() {
				So(atFloor.Score, ShouldEqual, 30)
				So(atCeiling.Score, ShouldEqual, 30)
			})
		})

		Convey("When the price is exactly 5% above the ceiling", func() {
			l.Price = 210_000
			r := m.Score(l, p)

			Convey("Then it earns 75% of the weight, rounded only at the end", func() {
				// 22.5 points rounds half away from zero.
				So(r.Score, ShouldEqual, 23)
				So(r.Criteria, ShouldResemble, []string{match.LabelPriceSlightlyOver})
			})
		})

		Convey("When the price is between 5% and 10% above the ceiling", func() {
			l.Price = 220_000
			r := m.Score(l, p)

			Convey("Then it earns half the weight with the moderate label", func() {
				So(r.Score, ShouldEqual, 15)
				So(r.Criteria, ShouldResemble, []string{match.LabelPriceModeratelyOver})
			})
		})

		Convey("When the price is between 10% and 20% above the ceiling", func() {
			l.Price = 236_000
			r := m.Score(l, p)

			Convey("Then it earns a quarter of the weight silently", func() {
				// 7.5 points, no label for this band.
				So(r.Score, ShouldEqual, 8)
				So(r.Criteria, ShouldBeEmpty)
			})
		})

		Convey("When the price is between 20% and 30% above the ceiling", func() {
			l.Price = 252_000
			r := m.Score(l, p)

			Convey("Then it earns a tenth of the weight silently", func() {
				So(r.Score, ShouldEqual, 3)
				So(r.Criteria, ShouldBeEmpty)
			})
		})

		Convey("When the price is 31% above the ceiling", func() {
			l.Price = 262_000
			r := m.Score(l, p)

			Convey("Then the price criterion earns nothing", func() {
				So(r.Score, ShouldEqual, 0)
				So(r.Criteria, ShouldBeEmpty)
			})
		})

		Convey("When the price is up to 10% below the floor", func() {
			l.Price = 95_000
			r := m.Score(l, p)

			Convey("Then it earns 85% of the weight with the below label", func() {
				// 25.5 points.
				So(r.Score, ShouldEqual, 26)
				So(r.Criteria, ShouldResemble, []string{match.LabelPriceSlightlyUnder})
			})
		})

		Convey("When the price is between 10% and 20% below the floor", func() {
			l.Price = 85_000
			r := m.Score(l, p)

			Convey("Then it earns 70% of the weight silently", func() {
				So(r.Score, ShouldEqual, 21)
				So(r.Criteria, ShouldBeEmpty)
			})
		})

		Convey("When the price is far below the floor", func() {
			l.Price = 40_000
			r := m.Score(l, p)

			Convey("Then it still earns half the weight silently", func() {
				So(r.Score, ShouldEqual, 15)
				So(r.Criteria, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a profile with no price bounds at all", t, func() {
		m := match.New()
		r := m.Score(model.Listing{Price: 123_456}, model.SearchProfile{})

		Convey("Then the price criterion is skipped entirely", func() {
			So(r.Score, ShouldEqual, 0)
			So(r.Criteria, ShouldBeEmpty)
		})
	})

	Convey("Given a profile with only a floor", t, func() {
		m := match.New()
		p := model.SearchProfile{PriceMin: fp(100_000)}

		Convey("When the price is above the floor", func() {
			r := m.Score(model.Listing{Price: 900_000}, p)

			Convey("Then the open-ended ceiling never penalizes it", func() {
				So(r.Score, ShouldEqual, 30)
				So(r.Criteria, ShouldResemble, []string{match.LabelPriceInRange})
			})
		})
	})
}

func TestMatcher_Score_Rooms(t *testing.T) {
	Convey(`Given a matcher and a profile asking for "3+" rooms`, t, func() {
		m := match.New()
		p := model.SearchProfile{Rooms: "3+"}

		Convey("Then credit decays as the listing falls short of the minimum", func() {
			So(m.Score(model.Listing{Rooms: 5}, p).Score, ShouldEqual, 20)
			So(m.Score(model.Listing{Rooms: 3}, p).Score, ShouldEqual, 20)
			So(m.Score(model.Listing{Rooms: 2}, p).Score, ShouldEqual, 12)
			So(m.Score(model.Listing{Rooms: 1}, p).Score, ShouldEqual, 5)
			So(m.Score(model.Listing{Rooms: 0}, p).Score, ShouldEqual, 0)
		})

		Convey("And only the full award carries the rooms label", func() {
			So(m.Score(model.Listing{Rooms: 3}, p).Criteria, ShouldResemble, []string{match.LabelRooms})
			So(m.Score(model.Listing{Rooms: 2}, p).Criteria, ShouldBeEmpty)
		})
	})

	Convey(`Given a profile asking for exactly "2" rooms`, t, func() {
		m := match.New()
		p := model.SearchProfile{Rooms: "2"}

		Convey("Then near misses on either side earn partial credit", func() {
			So(m.Score(model.Listing{Rooms: 2}, p).Score, ShouldEqual, 20)
			So(m.Score(model.Listing{Rooms: 1}, p).Score, ShouldEqual, 12)
			So(m.Score(model.Listing{Rooms: 3}, p).Score, ShouldEqual, 12)
			So(m.Score(model.Listing{Rooms: 4}, p).Score, ShouldEqual, 5)
			So(m.Score(model.Listing{Rooms: 5}, p).Score, ShouldEqual, 0)
		})

		Convey("And the one-off award carries the close-rooms label", func() {
			So(m.Score(model.Listing{Rooms: 3}, p).Criteria, ShouldResemble, []string{match.LabelRoomsClose})
		})
	})

	Convey("Given an empty or malformed rooms preference", t, func() {
		m := match.New()

		Convey("Then the criterion is skipped", func() {
			So(m.Score(model.Listing{Rooms: 3}, model.SearchProfile{}).Score, ShouldEqual, 0)
			So(m.Score(model.Listing{Rooms: 3}, model.SearchProfile{Rooms: "muchos"}).Score, ShouldEqual, 0)
		})
	})
}

func TestMatcher_Score_Location(t *testing.T) {
	Convey("Given the default neighborhood hierarchy", t, func() {
		m := match.New()

		Convey(`When a profile asks for "Palermo" and the listing sits in a sub-neighborhood`, func() {
			p := model.SearchProfile{Neighborhoods: []string{"Palermo"}}
			l := model.Listing{Address: "Medrano 1200", Neighborhood: "Palermo Soho", Region: "CABA"}
			r := m.Score(l, p)

			Convey("Then the expansion matches and earns the full 25 points", func() {
				So(r.Score, ShouldEqual, 25)
				So(r.Criteria, ShouldResemble, []string{match.LabelLocation})
			})
		})

		Convey("When the containment test needs to ignore case", func() {
			p := model.SearchProfile{Neighborhoods: []string{"BELGRANO"}}
			l := model.Listing{Neighborhood: "belgrano", Region: "CABA"}

			Convey("Then it still matches", func() {
				So(m.Score(l, p).Score, ShouldEqual, 25)
			})
		})

		Convey("When no requested neighborhood appears in the location text", func() {
			p := model.SearchProfile{Neighborhoods: []string{"Caballito"}}
			l := model.Listing{Neighborhood: "Flores", Region: "CABA"}

			Convey("Then the criterion earns nothing", func() {
				So(m.Score(l, p).Score, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a custom hierarchy table", t, func() {
		m := match.New(match.WithNeighborhoodGroups(map[string][]string{
			"Zona Norte": {"Vicente López", "Olivos", "Martínez"},
		}))

		Convey("When a profile asks for the group name", func() {
			p := model.SearchProfile{Neighborhoods: []string{"Zona Norte"}}
			l := model.Listing{Neighborhood: "Olivos", Region: "GBA"}

			Convey("Then group members match", func() {
				So(m.Score(l, p).Score, ShouldEqual, 25)
			})
		})

		Convey("When a profile asks for a name outside the table", func() {
			p := model.SearchProfile{Neighborhoods: []string{"Olivos"}}
			l := model.Listing{Neighborhood: "Olivos"}

			Convey("Then the name passes through unchanged and matches", func() {
				So(m.Score(l, p).Score, ShouldEqual, 25)
			})
		})
	})
}

func TestMatcher_Score_Area(t *testing.T) {
	Convey("Given a profile with a minimum total area of 100", t, func() {
		m := match.New()
		p := model.SearchProfile{MinTotalArea: fp(100)}

		Convey("Then credit follows the deficit bands", func() {
			So(m.Score(model.Listing{TotalArea: fp(120)}, p).Score, ShouldEqual, 15)
			So(m.Score(model.Listing{TotalArea: fp(100)}, p).Score, ShouldEqual, 15)
			So(m.Score(model.Listing{TotalArea: fp(96)}, p).Score, ShouldEqual, 12)
			So(m.Score(model.Listing{TotalArea: fp(92)}, p).Score, ShouldEqual, 9)
			// 30% of 15 is 4.5; rounded only at the end.
			So(m.Score(model.Listing{TotalArea: fp(85)}, p).Score, ShouldEqual, 5)
			So(m.Score(model.Listing{TotalArea: fp(70)}, p).Score, ShouldEqual, 0)
		})

		Convey("And only the full and slightly-under awards carry labels", func() {
			So(m.Score(model.Listing{TotalArea: fp(120)}, p).Criteria, ShouldResemble, []string{match.LabelTotalArea})
			So(m.Score(model.Listing{TotalArea: fp(96)}, p).Criteria, ShouldResemble, []string{match.LabelAreaSlightlyUnder})
			So(m.Score(model.Listing{TotalArea: fp(92)}, p).Criteria, ShouldBeEmpty)
		})

		Convey("When the listing has no total area", func() {
			Convey("Then the criterion is skipped", func() {
				So(m.Score(model.Listing{}, p).Score, ShouldEqual, 0)
			})
		})
	})
}

func TestMatcher_Score_ParkingAmenitiesAge(t *testing.T) {
	Convey("Given a matcher", t, func() {
		m := match.New()

		Convey("When the profile requires parking", func() {
			p := model.SearchProfile{NeedsParking: true}

			Convey("Then a listing with parking earns the 5 points", func() {
				r := m.Score(model.Listing{HasParking: true}, p)
				So(r.Score, ShouldEqual, 5)
				So(r.Criteria, ShouldResemble, []string{match.LabelParking})
			})

			Convey("And a listing without parking earns nothing", func() {
				So(m.Score(model.Listing{}, p).Score, ShouldEqual, 0)
			})
		})

		Convey("When the profile does not require parking", func() {
			Convey("Then listing parking is never rewarded", func() {
				So(m.Score(model.Listing{HasParking: true}, model.SearchProfile{}).Score, ShouldEqual, 0)
			})
		})

		Convey("When half the requested amenities are offered", func() {
			p := model.SearchProfile{Amenities: []string{"Pileta", "Parrilla"}}
			l := model.Listing{Amenities: []string{"pileta", "Gimnasio"}}
			r := m.Score(l, p)

			Convey("Then the award is the satisfied fraction of the weight", func() {
				// 1.5 points rounds to 2 and the label appears once.
				So(r.Score, ShouldEqual, 2)
				So(r.Criteria, ShouldResemble, []string{match.LabelAmenities})
			})
		})

		Convey("When no requested amenity is offered", func() {
			p := model.SearchProfile{Amenities: []string{"Pileta"}}
			l := model.Listing{Amenities: []string{"Parrilla"}}

			Convey("Then there is no award and no label", func() {
				r := m.Score(l, p)
				So(r.Score, ShouldEqual, 0)
				So(r.Criteria, ShouldBeEmpty)
			})
		})

		Convey("When the age label matches case-insensitively", func() {
			p := model.SearchProfile{AgeLabels: []string{"A Estrenar"}}
			l := model.Listing{Age: "a estrenar"}
			r := m.Score(l, p)

			Convey("Then it earns the 2 points", func() {
				So(r.Score, ShouldEqual, 2)
				So(r.Criteria, ShouldResemble, []string{match.LabelAge})
			})
		})

		Convey("When the listing has no age label", func() {
			p := model.SearchProfile{AgeLabels: []string{"5"}}

			Convey("Then the criterion is skipped", func() {
				So(m.Score(model.Listing{}, p).Score, ShouldEqual, 0)
			})
		})
	})
}

func TestMatcher_Score_EndToEnd(t *testing.T) {
	Convey("Given the full brokerage scenario", t, func() {
		m := match.New()
		l := model.Listing{
			Category:         model.CategoryDepartamento,
			Operation:        model.OperationVenta,
			Price:            150_000,
			TotalArea:        fp(50),
			Rooms:            2,
			HasParking:       false,
			Amenities:        []string{"Pileta"},
			Age:              "5",
			AcceptsFinancing: true,
			ProfessionalUse:  false,
			PetsAllowed:      false,
			Address:          "Medrano 1200",
			Neighborhood:     "Palermo Soho",
			Region:           "CABA",
		}
		p := model.SearchProfile{
			Categories:    []model.Category{model.CategoryDepartamento},
			Operation:     model.OperationVenta,
			PriceMin:      fp(140_000),
			PriceMax:      fp(160_000),
			Neighborhoods: []string{"Palermo"},
			Rooms:         "2",
			MinTotalArea:  fp(45),
			Amenities:     []string{"Pileta"},
			AgeLabels:     []string{"5"},
		}

		Convey("When the listing is checked and scored", func() {
			eligible := match.Eligible(l, p)
			r := m.Score(l, p)

			Convey("Then it is eligible and scores 95", func() {
				So(eligible, ShouldBeTrue)
				So(r.Score, ShouldEqual, 95)
			})

			Convey("And the criteria follow evaluation order", func() {
				So(r.Criteria, ShouldResemble, []string{
					match.LabelPriceInRange,
					match.LabelLocation,
					match.LabelRooms,
					match.LabelTotalArea,
					match.LabelAmenities,
					match.LabelAge,
				})
			})
		})
	})
}

func TestMatcher_Score_Properties(t *testing.T) {
	Convey("Given arbitrary inputs", t, func() {
		m := match.New()
		l := model.Listing{
			Category:     model.CategoryCasa,
			Operation:    model.OperationAlquiler,
			Price:        320_000,
			TotalArea:    fp(140),
			Rooms:        4,
			HasParking:   true,
			Amenities:    []string{"Parrilla", "Jardín"},
			Age:          "20",
			Neighborhood: "Villa Urquiza",
			Region:       "CABA",
		}
		p := model.SearchProfile{
			Operation:     model.OperationAlquiler,
			PriceMin:      fp(250_000),
			PriceMax:      fp(300_000),
			Neighborhoods: []string{"Villa Urquiza", "Coghlan"},
			Rooms:         "3+",
			MinTotalArea:  fp(120),
			NeedsParking:  true,
			Amenities:     []string{"Parrilla"},
			AgeLabels:     []string{"10"},
		}

		Convey("When scored repeatedly", func() {
			first := m.Score(l, p)
			second := m.Score(l, p)

			Convey("Then the result is deterministic", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When scored at all", func() {
			r := m.Score(l, p)

			Convey("Then the score stays within bounds", func() {
				So(r.Score, ShouldBeGreaterThanOrEqualTo, 0)
				So(r.Score, ShouldBeLessThanOrEqualTo, 100)
			})
		})

		Convey("When the profile is completely empty", func() {
			r := m.Score(l, model.SearchProfile{})

			Convey("Then every criterion is skipped and the output is valid", func() {
				So(r.Score, ShouldEqual, 0)
				So(r.Criteria, ShouldBeEmpty)
			})
		})
	})
}
