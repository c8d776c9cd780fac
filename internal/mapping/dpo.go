package mapping

// Demo plot observation answer codes to display text. Older forms submit the
// full snake_cased label, newer forms submit numeric codes; both map here.
var DPOAnswerText = map[string]map[string]string{
	"stumped_trees": {
		"No_stumped_demo_plot":       "No stumped demo plot",
		"Yes_demo_plot_of_10m_x_10m": "Yes, demo plot of 10m x 10m",
	},
	"Sucker_Selection_Taken_Place": {
		"No_Many_suckers":                "No, Many suckers",
		"Yes_Sucker_selection_completed": "Yes, Sucker selection completed",
	},
	"present_compost_heap": {
		"No":                             "No",
		"Yes_compost_or_manure_heap_seen": "Yes, compost or manure heap seen",
		"1":                              "Yes, compost or manure heap seen",
		"0":                              "No compost or manure heap seen",
	},
	"has_the_demo_plot_been_dug": {
		"No_sign_of_digging": "No sign of digging",
		"Yes_field_dug":      "Yes, field dug",
		"1":                  "Yes, field dug",
		"0":                  "No sign of digging",
	},
	"how_many_weeds_are_under_the_tree_canopy": {
		"No_weeds_under_the_tree_canopy":   "No weeds under the tree canopy",
		"Few_weeds_under_the_tree_canopy":  "Few weeds under the tree canopy",
		"Many_weeds_under_the_tree_canopy": "Many weeds under the tree canopy",
		"0":                                "No weeds under the tree canopy",
		"1":                                "Few weeds under the tree canopy",
		"2":                                "Many weeds under the tree canopy",
	},
	"how_big_are_the_weeds": {
		"Weeds_are_less_than_30cm_tall_or_30cm_spread_for_grasses": "Weeds are less than 30cm tall or 30cm spread for grasses",
		"Weeds_are_more_than_30cm_tall_or_30cm_spread_for_grasses": "Weeds are more than 30cm tall or 30cm spread for grasses",
		"1": "Weeds are less than 30cm tall or 30cm spread for grasses",
		"2": "Weeds are more than 30cm tall or 30cm spread for grasses",
	},
	"level_of_shade_present": {
		"NO_shade,_less_than_5%":  "NO shade, less than 5%",
		"Light_shade,_5_to_20%":   "Light shade, 5 to 20%",
		"Medium_shade,_20_to_40%": "Medium shade, 20 to 40%",
		"Heavy_shade,_over_40%":   "Heavy shade, over 40%",
		"0":                       "NO shade, less than 5%",
		"1":                       "Light shade, 5 to 20%",
		"2":                       "Medium shade, 20 to 40%",
		"3":                       "Heavy shade, over 40%",
	},
	"mulch_under_the_canopy": {
		"No":                  "No",
		"Yes_Some_mulch_seen": "Yes, Some mulch seen",
		"1":                   "Yes, Some mulch seen",
		"0":                   "No mulch seen",
	},
	"thickness_of_mulch": {
		"Soil_can_be_seen_clearly,_less_than_2cm_of_mulch.": "Soil can be seen clearly, less than 2cm of mulch",
		"Soil_can_not_be_seen,_more_than_2cm_of_mulch.":     "Soil can not be seen, more than 2cm of mulch",
		"1": "Soil can be seen clearly, less than 2cm of mulch",
		"2": "Soil can not be seen, more than 2cm of mulch",
	},
	"vetiver_planted": {
		"No_Vetiver_not_planted":      "No. Vetiver not planted",
		"Yes_Row_of_vetiver_planted":  "Yes. Row of vetiver planted",
		"1":                           "Yes. Row of vetiver planted",
		"0":                           "No. Vetiver not planted",
	},
	"pruning_methods": {
		"1": "Centers opened",
		"2": "Unwanted suckers removed",
		"3": "Dead branches removed",
		"4": "Branches touching the ground removed",
		"5": "Broken/unproductive stems and/or branches removed",
		"0": "No pruning methods used",
	},
	"rejuvenation_plot": {
		"1": "Yes. There is a rejuvenated plot",
		"0": "No rejuvenated plot",
	},
	"suckers_three": {
		"1": "Yes. Sucker selection is complete",
		"0": "No. Sucker selection has not been done",
	},
	"covercrop_present": {
		"1": "Arachis",
		"2": "Beans",
		"3": "Mulch",
		"0": "No Covercropping Practice",
	},
}

// DPOCriterion pairs a best practice section key with its result criterion
// label. Sections are processed in this order.
type DPOCriterion struct {
	Section   string
	Criterion string
}

var DPOCriteria = []DPOCriterion{
	{Section: "compost_heap", Criterion: "Compost Heap"},
	{Section: "mulch", Criterion: "Mulch"},
	{Section: "shade_management", Criterion: "Shade Management"},
	{Section: "vetiver", Criterion: "Vetiver Planted"},
	{Section: "weed_management", Criterion: "Weed Management"},
	{Section: "rejuvenation", Criterion: "Rejuvenation"},
	{Section: "sucker_selection", Criterion: "Sucker Selection"},
	{Section: "stumped", Criterion: "Stumped Trees"},
	{Section: "pruning", Criterion: "Pruning"},
	{Section: "covercropping", Criterion: "Covercrop Planted"},
}

// Demo plot questions whose answers are space separated multiselects.
var DPOMultiselect = map[string]bool{
	"covercrop_present": true,
	"pruning_methods":   true,
}
