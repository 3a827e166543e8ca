package catalog

func builtinDefinitions() []Definition {
	return []Definition{
		{
			Key:          "Rice (Paddy)",
			DurationDays: 120,
			Stages: []Stage{
				{Name: "Land Preparation", Days: 7, Activities: []string{"Ploughing", "Leveling", "Bund repair"}},
				{Name: "Nursery Preparation", Days: 25, Activities: []string{"Seed treatment", "Nursery bed preparation", "Sowing"}},
				{Name: "Transplanting", Days: 5, Activities: []string{"Field preparation", "Transplant seedlings", "Gap filling"}},
				{Name: "Vegetative Stage", Days: 40, Activities: []string{"Irrigation", "Weeding", "First fertilizer dose"}},
				{Name: "Reproductive Stage", Days: 30, Activities: []string{"Second fertilizer dose", "Pest monitoring", "Disease control"}},
				{Name: "Maturity & Harvest", Days: 13, Activities: []string{"Stop irrigation", "Harvesting", "Threshing"}},
			},
			Fertilizer: []FertilizerEvent{
				{Day: 15, Fertilizer: "Urea - 25 kg/acre", Stage: "After transplanting"},
				{Day: 40, Fertilizer: "Urea - 25 kg/acre", Stage: "Tillering stage"},
				{Day: 60, Fertilizer: "Urea - 15 kg/acre", Stage: "Panicle initiation"},
			},
		},
		{
			Key:          "Coconut",
			DurationDays: 365,
			Stages: []Stage{
				{Name: "Year-round Care", Days: 365, Activities: []string{"Regular watering", "Manuring", "Pest control"}},
			},
			Fertilizer: []FertilizerEvent{
				{Day: 90, Fertilizer: "Organic manure - 25 kg/palm", Stage: "Pre-monsoon"},
				{Day: 180, Fertilizer: "NPK - 1.3 kg/palm", Stage: "Monsoon"},
				{Day: 270, Fertilizer: "Organic manure - 25 kg/palm", Stage: "Post-monsoon"},
			},
		},
		{
			Key:          "Pepper",
			DurationDays: 240,
			Stages: []Stage{
				{Name: "Planting", Days: 15, Activities: []string{"Pit preparation", "Planting cuttings", "Mulching"}},
				{Name: "Establishment", Days: 60, Activities: []string{"Regular watering", "Training vines", "Mulching"}},
				{Name: "Vegetative Growth", Days: 90, Activities: []string{"Fertilizer application", "Pruning", "Pest control"}},
				{Name: "Flowering & Fruiting", Days: 75, Activities: []string{"Increased irrigation", "Nutrient spray", "Disease control"}},
			},
			Fertilizer: []FertilizerEvent{
				{Day: 45, Fertilizer: "Organic manure - 10 kg/vine", Stage: "After planting"},
				{Day: 120, Fertilizer: "NPK - 100:60:140 g/vine", Stage: "Growth stage"},
				{Day: 180, Fertilizer: "NPK - 100:60:140 g/vine", Stage: "Flowering stage"},
			},
		},
		{
			Key:          "Banana",
			DurationDays: 365,
			Stages: []Stage{
				{Name: "Planting", Days: 15, Activities: []string{"Pit preparation", "Sucker selection", "Planting"}},
				{Name: "Vegetative Phase", Days: 120, Activities: []string{"Irrigation", "Mulching", "Earthing up"}},
				{Name: "Flowering Phase", Days: 90, Activities: []string{"Bunch care", "Propping", "Denavelling"}},
				{Name: "Fruiting & Harvest", Days: 140, Activities: []string{"Bunch covering", "Harvesting", "Post-harvest"}},
			},
			Fertilizer: []FertilizerEvent{
				{Day: 30, Fertilizer: "FYM - 10 kg/plant", Stage: "After planting"},
				{Day: 60, Fertilizer: "NPK - 200:100:300 g/plant", Stage: "Vegetative"},
				{Day: 120, Fertilizer: "NPK - 200:100:300 g/plant", Stage: "Pre-flowering"},
			},
		},
	}
}
