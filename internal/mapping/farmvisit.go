package mapping

// Best practice questions whose answers are space separated multiselects.
var FVBPMultiselect = map[string]bool{
	"pruning_method_on_majority_trees":                  true,
	"type_chemical_applied_on_coffee_last_12_months":    true,
	"which_product_have_you_used":                       true,
	"methods_of_controlling_coffee_berry_borer":         true,
	"methods_of_controlling_white_stem_borer":           true,
	"methods_of_controlling_coffee_leaf_rust":           true,
	"methods_of_erosion_control":                        true,
	"which_pests_cause_you_problems":                    true,
	"do_you_spray_any_of_the_following_on_your_farm_for_leaf_miner_or_rust": true,
}

// Top level form keys that are never treated as loose farm visit questions.
var FVQuestionsIgnored = map[string]bool{
	"#type":                        true,
	"@name":                        true,
	"@uiVersion":                   true,
	"@version":                     true,
	"@xmlns":                       true,
	"attendance_count":             true,
	"case":                         true,
	"closing":                      true,
	"current_module":               true,
	"current_module_name":          true,
	"date_1":                       true,
	"date_last_60_days":            true,
	"date_of_visit":                true,
	"date_tomorrow":                true,
	"farm_being_visted":            true,
	"farm_visit_comments":          true,
	"farm_visit_photo":             true,
	"introduction":                 true,
	"mark_complete":                true,
	"meta":                         true,
	"present_participants":         true,
	"previous_module":              true,
	"secondary_farmer":             true,
	"secondary_farmer_firstname":   true,
	"secondary_farmer_fullname":    true,
	"secondary_farmer_lastname":    true,
	"secondary_farmer_available":   true,
	"signature_of_farmer":          true,
	"signature_of_farmer_trainer":  true,
	"signature_of_agronomy_advisor": true,
	"survey_type":                  true,
	"trainer":                      true,
	"training_session":             true,
	"field_inventory_survey":       true,
	"best_practice_questions":      true,
	"survey_type_2":                true,
	"updated_fis_list":             true,
	"instruction____you_will_now_proceed_ask_the_farmers_about_their_attendance_": true,
	"count_selected_farmers": true,
	"household_tns_id":       true,
}

// Loose farm visit questions with country specific code maps.
var FVQuestionText = map[string]map[string]string{
	"variety": {
		"1": "SL34 or SL28",
		"2": "Ruiru 11",
		"3": "Batien",
		"4": "French mission/other",
	},
	"planted_on_land_that_have_previously_been_planted_with_woodland_or_forest": {
		"1": "Natural woodland or forest",
		"2": "Eucalyptus or other tree plantation",
		"0": "No sign the field(s) was previously woodland or forest.",
	},
}

// Question keys answered as raw yes/no flags.
var YNQuestionSuffixes = []string{
	"attended_training",
}

// Best practice questions whose code maps vary by visit type.
var FVBPVisitTypeFiltered = map[string]bool{
	"type_chemical_applied_on_coffee_last_12_months": true,
	"methods_of_controlling_coffee_berry_borer":      true,
	"do_you_have_a_record_book":                      true,
	"are_there_records_on_the_record_book":           true,
}

// CommCare app id to stumping program year. Updated per cohort until the
// stumping periods can be expressed in the form itself.
var FVStumpingProgramYear = map[string]string{
	"dd10fc19040d40f0be48a447e1d2727c": "2024", // Regrow 2025
	"f079b0daae1d4d34a89e331dc5a72fbd": "2024", // CREW 2025
	"521097abbcfd4fa79668cb6ca3dca28a": "2025", // Regrow 2024
	"0c9b5791828b4baea6c1eaa4d6979c5a": "2025", // CREW 2024
}

// Best practice answer codes to display text, for questions whose codes mean
// the same thing in every country.
var FVBPAnswerText = map[string]map[string]string{
	"pruning_method_on_majority_trees": {
		"1": "Centers opened",
		"2": "Unwanted suckers removed",
		"3": "Dead branches removed",
		"4": "Branches touching the ground removed",
		"5": "Broken / unproductive stems and/or branches removed",
		"0": "No pruning methods used",
	},
	"health_of_new_planting_choice": {
		"1": "The majority of trees are green and healthy and have grown well",
		"2": "The majority of trees look stressed and growth is slow",
		"3": "The majority of trees have dried up or died",
	},
	"are_the_leave_green_or_yellow_pale_green": {
		"1": "Nearly all leaves are dark green and less than 5% (less than 5 in 100) are yellow, pale green, or brown.",
		"2": "5% or more (5 or more in 100) of the leaves are yellow, pale green or brown.",
	},
	"how_many_weeds_under_canopy_and_how_big_are_they": {
		"1": "Few small weeds (less than 30cm) under the tree canopy",
		"2": "Many small weeds under the tree canopy (ground is covered with weeds)",
		"3": "Many large weeds under the tree canopy (ground is covered with weeds)",
	},
	"used_herbicides": {"yes": "Yes", "no": "No"},
	"which_product_have_you_used": {
		"1": "Glyphosate (Eg Round Up)",
		"2": "Paraquat (Eg. Gramoxone)",
		"3": "Other",
	},
	"look_has_the_coffee_field_been_dug": {
		"0": "No sign of digging",
		"1": "Yes field dug",
	},
	"methods_of_controlling_white_stem_borer": {
		"1":  "Encourage natural predators and parasites",
		"2":  "Strip all berries at the end of the harvest or collect fallen berries",
		"3":  "Harvest ripe cherries regularly",
		"4":  "Use Berry Borer traps",
		"5":  "Use compost or manure, to keep the tree healthy",
		"6":  "Use good agricultural practices such as weeding or mulching to reduce stress and keep trees healthy",
		"7":  "Stump old coffee",
		"8":  "Plant disease resistant varieties",
		"9":  "Prune or keep the canopy open",
		"10": "Uproot wilt infected coffee trees and burn",
		"11": "Smooth the bark at the base of the tree",
		"0":  "Farmer does not know",
	},
	"methods_of_controlling_coffee_leaf_rust": {
		"1": "Feed the tree well to keep it healthy",
		"2": "Use good agricultural practices such as weeding or mulching to reduce stress and keep trees healthy",
		"3": "Prune or keep canopy open",
		"4": "Spray fungicides",
		"5": "Grow resistant varieties",
		"0": "Does not know any methods",
	},
	"methods_of_erosion_control": {
		"1": "Stabilizing grasses",
		"2": "Mulch",
		"3": "Water traps or trenches",
		"4": "Physical barriers. (e.g. rocks)",
		"5": "Terraces",
		"6": "Contour planting",
		"7": "Bean or Arachis cover crop between the rows",
		"0": "No erosion control method seen",
	},
	"level_of_shade_present_on_the_farm": {
		"0": "NO shade, less than 5%",
		"1": "Light shade, 5 to 20%",
		"2": "Medium shade, 20 to 40%",
		"3": "Heavy shade, over 40%",
	},
	"planted_intercrop_bananas": {"yes": "Yes", "no": "No"},
	"new_shade_trees_in_the_last_3_years": {
		"0": "No new shade trees planted in the last 3 years",
		"1": "YES, enough new shade trees planted in the last 3 years to give 20% shade when mature",
		"2": "Few new shade trees planted in the last 3 years",
	},
	"do_you_have_compost_manure": {
		"0": "NO",
		"1": "YES, compost or manure heap seen",
	},
	"stumping_methods_used_on_majority_of_trees": {
		"0": "No trees stumped",
		"1": "Yes, some trees stumped and trees seen",
	},
	"used_pesticides": {"1": "Yes", "0": "No"},
	"pesticide_spray_type": {
		"1": "Routine spray",
		"2": "After scouting and seeing a pest",
	},
	"which_pests_cause_you_problems": {
		"1": "Leaf miner",
		"2": "Coffee Berry Borer",
		"3": "Scles and Mealy bugs",
		"4": "None pest issue",
	},
	"do_you_need_to_spray_to_manage_leaf_rust": {"no": "No", "yes": "Yes"},
	"do_you_spray_any_of_the_following_on_your_farm_for_leaf_miner_or_rust": {
		"1": "Products containing Imidacloprid which include Acronyx, Admire Pro, Alias, Midash Forte and Nuprid?",
		"2": "Products containing Propiconazole which includes Tilt?",
		"3": "None of the products used",
	},
	"is_there_a_kitchen_garden": {
		"1": "Yes. There is a kitchen garden on the farm",
		"0": "No kitchen garden planted",
	},
	"vegetables_planted": {
		"1":  "Carrots",
		"2":  "Beetroot",
		"3":  "Swiss chard",
		"4":  "Kale",
		"99": "Other",
	},
}

// Best practice answer codes whose meaning depends on the visit type.
var FVBPAnswerTextByVisitType = map[string]map[string]map[string]string{
	"type_chemical_applied_on_coffee_last_12_months": {
		"Farm Visit Full - ZM": {
			"1": "Compost",
			"2": "Manure",
			"3": "Lime",
			"4": "Compound S",
			"5": "Compound J",
			"6": "Single Super Phosphate (SSP)",
			"7": "Zinc/Boron Foliar Feed (Tracel)",
			"8": "Ammonium Nitrate",
			"0": "Did NOT apply any fertilizer in past 12 months",
		},
		"Farm Visit Full - ET": {
			"1": "Compost, homemade or pulp compost",
			"2": "Manure",
			"0": "Did NOT apply any organic fertilizer in past 12 months",
		},
		"Farm Visit Full - KE": {
			"1":  "Compost",
			"2":  "Manure",
			"3":  "NPK 22:6:12",
			"4":  "NPK 17:17:17",
			"5":  "Other NPK",
			"6":  "Zinc/Boron Foliar feed",
			"7":  "General Foliar feed",
			"8":  "LIME",
			"9":  "CAN",
			"10": "WonderGro",
			"0":  "Did NOT apply any fertilizer in past 12 months",
		},
		"Farm Visit Full - PR": {
			"1":  "NPK 10:10:5-10",
			"2":  "NPK 10:10:5-10",
			"3":  "NPK 10:5:15-20",
			"4":  "NPK 10:5:15-20",
			"5":  "NPK 10:5:15-20",
			"6":  "NPK 10:5:15-20",
			"7":  "NPK 10:5:15-20",
			"8":  "NPK 15:5:10-19",
			"9":  "NPK 15:5:10-19",
			"10": "NPK 15:5:10-19",
			"11": "NPK 15:15:15",
			"12": "NPK 20:5:10-20",
			"13": "NPK 20:5:10-20",
			"14": "DAP",
			"15": "Urea",
			"16": "Compost or Manure",
			"17": "Agricultural Lime - Calcium Carbonate",
			"18": "Nutrical (cal dolomita)",
			"19": "Foliar Zinc or Boron",
			"20": "General Foliar Feed (Nurish, Ferquido Ferqan)",
			"0":  "Did NOT apply any fertilizer in past 12 months",
		},
	},
	"methods_of_controlling_coffee_berry_borer": {
		"Farm Visit Full - ZM": {
			"1":  "Reduce pesticide use and/or encourage natural predators and parasites - beneficial insects.",
			"2":  "Strip all berries at the end of harvest, known as crop hygiene",
			"3":  "Harvest ripe cherries regularly - to reduce pest and disease levels",
			"4":  "Use berry borer traps",
			"5":  "Collect fallen berries at the end of the season - crop hygiene",
			"6":  "Feed the tree well to keep it healthy",
			"7":  "Use good agricultural practices such as weeding or mulching to reduce stress and keep trees healthy",
			"8":  "Prune to keep the canopy open",
			"9":  "Renovate (new planting) or rejuvenate regularly to keep main stems less than 8 years old",
			"10": "Plant and grow disease resistant varieties",
			"11": "Smooth the bark to reduce egg laying sites for While Coffee Borer",
			"12": "Spray regular pesticides",
			"13": "Spray homemade herbal or botanical pesticides",
			"0":  "Does not use any methods",
		},
		"Farm Visit Full - PR": {
			"1": "Reduce pesticide use and encourage natural predators",
			"2": "Strip all berries at the end of harvest",
			"3": "Harvest ripe cherries regularly",
			"4": "Collect fallen berries",
			"5": "Use berry borer traps",
			"6": "Spray pesticides",
			"0": "Does not use any methods",
		},
		"Farm Visit Full - KE": {
			"1":  "Reduce pesticide use and/or encourage natural predators and parasites - beneficial insects.",
			"2":  "Strip all berries at the end of harvest, known as crop hygiene",
			"3":  "Harvest ripe cherries regularly - to reduce pest and disease levels",
			"4":  "Use berry borer traps",
			"5":  "Collect fallen berries at the end of the season - crop hygiene",
			"6":  "Feed the tree well to keep it healthy",
			"7":  "Use good agricultural practices such as weeding or mulching to reduce stress and keep trees healthy",
			"8":  "Prune to keep the canopy open",
			"9":  "Renovate (new planting) or rejuvenate regularly to keep main stems less than 8 years old",
			"10": "Plant and grow disease resistant varieties",
			"11": "Smooth the bark to reduce egg laying sites for While Coffee Borer",
			"12": "Spray regular pesticides",
			"13": "Spray homemade herbal or botanical pesticides",
			"0":  "Does not know any methods",
		},
	},
	"do_you_have_a_record_book": {
		"Farm Visit Full - ZM": {
			"0": "NO Record Book received",
			"1": "YES, Farmer received a Record Book",
		},
		"Farm Visit Full - KE": {
			"0": "NO Record Book received",
			"1": "YES, Farmer received a Record Book",
		},
		"Farm Visit Full - PR": {
			"0": "NO Record Book received",
			"1": "YES, Farmer received a Record Book",
		},
		"Farm Visit Full - ET": {
			"0": "NO Record Book",
			"1": "YES, Farmer has a Record Book",
		},
	},
	"are_there_records_on_the_record_book": {
		"Farm Visit Full - ZM": {
			"0": "NO records of coffee weight, income or expenses",
			"1": "YES, some records of  coffee weight, income or expenses",
		},
		"Farm Visit Full - KE": {
			"0": "NO records of coffee weight, income or expenses",
			"1": "YES, some records of  coffee weight, income or expenses",
		},
		"Farm Visit Full - PR": {
			"0": "NO records of coffee weight, income or expenses",
			"1": "YES, some records of  coffee weight, income or expenses",
		},
		"Farm Visit Full - ET": {
			"0": "NO records of coffee weight, income received for coffee sold, labour or other costs",
			"1": "YES records of coffee weight, income received for coffee sold, labour or other costs",
		},
	},
}

// Stumping period codes by program year.
var FVYearStumpingText = map[string]map[string]string{
	"2024": {
		"0":            "January to March 2024 at the start of the first year of training",
		"1":            "January to March 2025 at the start of the second year of training",
		"both_periods": "Both periods",
	},
	"2025": {
		"0":            "January to March 2025 at the start of the first year of training",
		"1":            "January to March 2026 at the start of the second year of training",
		"both_periods": "Both periods",
	},
	"2026": {
		"0":            "January to March 2026 at the start of the first year of training",
		"1":            "January to March 2027 at the start of the second year of training",
		"both_periods": "Both periods",
	},
}

// Best practice section keys to display labels.
var FVBPTypeLabel = map[string]string{
	"record_keeping":          "Record Keeping",
	"stumping":                "Stumping",
	"nutrition":               "Nutrition",
	"weeding":                 "Weeding",
	"pest_disease_management": "Integrated Pest & Disease Management",
	"erosion_control":         "Erosion Control",
	"shade_control":           "Shade Management",
	"compost":                 "Compost",
	"main_stems":              "Main Stems",
	"pruning":                 "Pruning",
	"safe_use_of_pesticides":  "Pesticide Use",
	"health_of_new_planting":  "Health of New Planting",
	"pesticide_use":           "Pesticide Use",
	"other":                   "General FV Questions",
}
