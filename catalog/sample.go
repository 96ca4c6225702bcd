package catalog

import "github.com/poiesic/prodir/core"

// SampleCompanies returns the built-in catalog used when neither the cache
// nor the remote dataset is available. Four fabricators with distinct
// capability profiles, enough to exercise search, discovery, and ranking
// offline.
func SampleCompanies() []*core.Company {
	return []*core.Company{
		{
			ID:          "sample-001",
			CVR:         "12345678",
			Name:        "Nordic Steel Works A/S",
			Description: "Specialist in heavy steel fabrication, welding, and custom metal structures.",
			Address: &core.Address{
				Street:     "Industrivej 42",
				City:       "Odense",
				PostalCode: "5000",
				Country:    "Denmark",
			},
			Website: "https://nordicsteelworks.dk",
			Phone:   "+45 65 12 34 56",
			Email:   "info@nordicsteelworks.dk",
			Capabilities: &core.Capabilities{
				Processes: []string{"Welding", "Cutting", "Bending", "Assembly"},
				Welding: &core.WeldingCapability{
					MinThickness: 1,
					MaxThickness: 50,
					Types:        []string{"MIG", "TIG", "Stick"},
				},
				Cutting: &core.CuttingCapability{
					Types:        []string{"Laser", "Plasma"},
					MaxThickness: 30,
				},
				Materials: []string{"Carbon Steel", "Stainless Steel", "Aluminum"},
			},
			Certifications: []string{"ISO 9001", "EN 1090-2"},
			Employees:      "50-100",
			Founded:        1985,
		},
		{
			ID:          "sample-002",
			CVR:         "23456789",
			Name:        "Copenhagen Pipe Solutions ApS",
			Description: "Leading manufacturer of industrial pipes and fittings for process industries.",
			Address: &core.Address{
				Street:     "Rørvej 15",
				City:       "København",
				PostalCode: "2300",
				Country:    "Denmark",
			},
			Website: "https://cph-pipes.dk",
			Phone:   "+45 32 98 76 54",
			Email:   "sales@cph-pipes.dk",
			Capabilities: &core.Capabilities{
				Processes: []string{"Pipe Fabrication", "Welding", "Threading", "Coating"},
				Pipes: &core.PipeCapability{
					MinDiameter: 10,
					MaxDiameter: 1000,
					Materials:   []string{"Carbon Steel", "Stainless Steel", "Duplex"},
				},
				Welding: &core.WeldingCapability{
					MaxThickness: 40,
					Types:        []string{"TIG", "Orbital"},
				},
				Materials: []string{"Carbon Steel", "Stainless Steel 316L", "Duplex 2205"},
			},
			Certifications: []string{"ISO 9001", "ISO 3834-2", "PED"},
			Employees:      "25-50",
			Founded:        1998,
		},
		{
			ID:          "sample-003",
			CVR:         "34567890",
			Name:        "Aalborg Metal Teknik",
			Description: "CNC machining and precision metal fabrication for industrial applications.",
			Address: &core.Address{
				Street:     "Metalvænget 8",
				City:       "Aalborg",
				PostalCode: "9000",
				Country:    "Denmark",
			},
			Website: "https://aalborg-metal.dk",
			Phone:   "+45 98 12 34 56",
			Email:   "kontakt@aalborg-metal.dk",
			Capabilities: &core.Capabilities{
				Processes: []string{"CNC Machining", "Milling", "Turning", "Grinding"},
				Machining: &core.MachiningCapability{
					MaxLength:   2000,
					MaxDiameter: 500,
					Tolerance:   0.01,
				},
				Materials: []string{"Steel", "Stainless Steel", "Aluminum", "Brass", "Titanium"},
			},
			Certifications: []string{"ISO 9001", "AS9100"},
			Employees:      "10-25",
			Founded:        2005,
		},
		{
			ID:          "sample-004",
			CVR:         "45678901",
			Name:        "Jysk Laser Cutting A/S",
			Description: "High-precision laser and waterjet cutting services for all metals.",
			Address: &core.Address{
				Street:     "Skærevej 22",
				City:       "Vejle",
				PostalCode: "7100",
				Country:    "Denmark",
			},
			Website: "https://jysklaser.dk",
			Phone:   "+45 75 82 34 56",
			Email:   "ordre@jysklaser.dk",
			Capabilities: &core.Capabilities{
				Processes: []string{"Laser Cutting", "Waterjet Cutting", "Bending"},
				Cutting: &core.CuttingCapability{
					Types:        []string{"Fiber Laser", "CO2 Laser", "Waterjet"},
					MaxThickness: 25,
				},
				Bending: &core.BendingCapability{
					MaxLength:    4000,
					MaxThickness: 15,
				},
				Materials: []string{"Carbon Steel", "Stainless Steel", "Aluminum", "Copper", "Brass"},
			},
			Certifications: []string{"ISO 9001"},
			Employees:      "25-50",
			Founded:        2010,
		},
	}
}
