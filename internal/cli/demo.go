package cli

import (
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/source"
)

// demoAdapters returns the fixture sources used in offline demo mode.
func demoAdapters() []source.Adapter {
	residential := source.NewStatic("HomeScout",
		property.Record{
			ID:           "hs-1001",
			PropertyType: "Single Family",
			Address:      "412 Mockingbird Ln",
			City:         "Austin",
			State:        "TX",
			ZipCode:      "78704",
			Price:        385000,
			Bedrooms:     property.Float(3),
			Bathrooms:    property.Float(2),
			SquareFeet:   property.Float(1820),
			YearBuilt:    property.Int(1998),
			MonthlyRent:  property.Float(2450),
		},
		property.Record{
			ID:           "hs-1002",
			PropertyType: "Condo",
			Address:      "77 Rainey St #1204",
			City:         "Austin",
			State:        "TX",
			ZipCode:      "78701",
			Price:        540000,
			Bedrooms:     property.Float(2),
			Bathrooms:    property.Float(2),
			SquareFeet:   property.Float(1150),
			YearBuilt:    property.Int(2016),
			MonthlyRent:  property.Float(2900),
		},
		property.Record{
			ID:           "hs-1003",
			PropertyType: "Multi-Family",
			Address:      "1509 E 12th St",
			City:         "Austin",
			State:        "TX",
			ZipCode:      "78702",
			Price:        725000,
			Bedrooms:     property.Float(4),
			Bathrooms:    property.Float(3),
			SquareFeet:   property.Float(2600),
			YearBuilt:    property.Int(1962),
			AnnualRent:   property.Float(62400),
		},
	)

	commercial := source.NewStatic("DealPoint",
		property.Record{
			ID:           "dp-2001",
			PropertyType: "Retail",
			Address:      "900 Congress Ave",
			City:         "Austin",
			State:        "TX",
			ZipCode:      "78701",
			Price:        2150000,
			SquareFeet:   property.Float(6400),
			YearBuilt:    property.Int(1985),
			AnnualRent:   property.Float(129000),
		},
		property.Record{
			ID:           "dp-2002",
			PropertyType: "Office",
			Address:      "3800 N Lamar Blvd",
			City:         "Austin",
			State:        "TX",
			ZipCode:      "78756",
			Price:        4800000,
			SquareFeet:   property.Float(18500),
			YearBuilt:    property.Int(2004),
		},
	)

	return []source.Adapter{residential, commercial}
}
